package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medifind/internal/domain/medicine"
	"github.com/BruksfildServices01/medifind/internal/dto"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/httpresp"
	"github.com/BruksfildServices01/medifind/internal/metrics"
	ucMedicine "github.com/BruksfildServices01/medifind/internal/usecase/medicine"
)

const maxImageBytes = 5 << 20

type MedicineHandler struct {
	create     *ucMedicine.CreateMedicine
	search     *ucMedicine.SearchMedicines
	get        *ucMedicine.GetMedicine
	byPharmacy *ucMedicine.ListPharmacyMedicines
	update     *ucMedicine.UpdateMedicine
	delete     *ucMedicine.DeleteMedicine
	image      *ucMedicine.UploadMedicineImage
	metrics    *metrics.Metrics
}

func NewMedicineHandler(
	create *ucMedicine.CreateMedicine,
	search *ucMedicine.SearchMedicines,
	get *ucMedicine.GetMedicine,
	byPharmacy *ucMedicine.ListPharmacyMedicines,
	update *ucMedicine.UpdateMedicine,
	delete *ucMedicine.DeleteMedicine,
	image *ucMedicine.UploadMedicineImage,
	m *metrics.Metrics,
) *MedicineHandler {
	return &MedicineHandler{
		create:     create,
		search:     search,
		get:        get,
		byPharmacy: byPharmacy,
		update:     update,
		delete:     delete,
		image:      image,
		metrics:    m,
	}
}

func (h *MedicineHandler) Create(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.CreateMedicineRequest
	if !bindJSON(c, &req) {
		return
	}
	expiry, ok := req.ExpiryDate.Time()
	if !ok {
		httperr.BadRequest(c, "invalid_expiry_date", "Expiry date must be YYYY-MM-DD or RFC 3339")
		return
	}

	m, err := h.create.Execute(c.Request.Context(), caller, ucMedicine.CreateMedicineInput{
		PharmacyID:           req.PharmacyID,
		Name:                 req.Name,
		Price:                req.Price,
		Stock:                req.Stock,
		Brand:                req.Brand,
		Category:             req.Category,
		Dosage:               req.Dosage,
		Description:          req.Description,
		ExpiryDate:           expiry,
		PrescriptionRequired: req.PrescriptionRequired,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, m)
}

// Search serves both the listing and the search route.
func (h *MedicineHandler) Search(c *gin.Context) {
	f, err := medicine.FilterFromQuery(c.Request.URL.Query())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	page, err := h.search.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.MedicineSearches.Inc()
	}
	httpresp.OK(c, page)
}

func (h *MedicineHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	m, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MedicineHandler) ByPharmacy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.byPharmacy.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *MedicineHandler) Update(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMedicineRequest
	if !bindJSON(c, &req) {
		return
	}
	expiry, ok := req.ExpiryDate.Time()
	if !ok {
		httperr.BadRequest(c, "invalid_expiry_date", "Expiry date must be YYYY-MM-DD or RFC 3339")
		return
	}

	m, err := h.update.Execute(c.Request.Context(), caller, id, ucMedicine.UpdateMedicineInput{
		Name:                 req.Name,
		Price:                req.Price,
		Stock:                req.Stock,
		Brand:                req.Brand,
		Category:             req.Category,
		Dosage:               req.Dosage,
		Description:          req.Description,
		ExpiryDate:           expiry,
		PrescriptionRequired: req.PrescriptionRequired,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MedicineHandler) Delete(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), caller, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, "Medicine deleted successfully")
}

// UploadImage expects a multipart form with the picture in field "image".
func (h *MedicineHandler) UploadImage(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)
	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.BadRequest(c, "image_too_large", "Image must be 5 MB or smaller")
			return
		}
		httperr.BadRequest(c, "missing_image", "Multipart field 'image' is required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, httperr.ErrInternal("failed_to_read_image", err))
		return
	}
	defer f.Close()

	m, err := h.image.Execute(c.Request.Context(), caller, id, f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, m)
}
