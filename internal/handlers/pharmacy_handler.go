package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medifind/internal/dto"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/httpresp"
	ucPharmacy "github.com/BruksfildServices01/medifind/internal/usecase/pharmacy"
)

type PharmacyHandler struct {
	create *ucPharmacy.CreatePharmacy
	list   *ucPharmacy.ListPharmacies
	get    *ucPharmacy.GetPharmacy
	mine   *ucPharmacy.GetMyPharmacy
	update *ucPharmacy.UpdatePharmacy
	delete *ucPharmacy.DeletePharmacy
}

func NewPharmacyHandler(
	create *ucPharmacy.CreatePharmacy,
	list *ucPharmacy.ListPharmacies,
	get *ucPharmacy.GetPharmacy,
	mine *ucPharmacy.GetMyPharmacy,
	update *ucPharmacy.UpdatePharmacy,
	delete *ucPharmacy.DeletePharmacy,
) *PharmacyHandler {
	return &PharmacyHandler{
		create: create,
		list:   list,
		get:    get,
		mine:   mine,
		update: update,
		delete: delete,
	}
}

func (h *PharmacyHandler) Create(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var req dto.CreatePharmacyRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.create.Execute(c.Request.Context(), caller, ucPharmacy.CreatePharmacyInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		Location:      req.Location,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, p)
}

func (h *PharmacyHandler) List(c *gin.Context) {
	items, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, items)
}

func (h *PharmacyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *PharmacyHandler) Mine(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	p, err := h.mine.Execute(c.Request.Context(), caller)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *PharmacyHandler) Update(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePharmacyRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.update.Execute(c.Request.Context(), caller, id, ucPharmacy.UpdatePharmacyInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		Location:      req.Location,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *PharmacyHandler) Delete(c *gin.Context) {
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
	httpresp.Message(c, "Pharmacy deleted successfully")
}
