package medicine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/medifind/internal/audit"
	medicineDomain "github.com/BruksfildServices01/medifind/internal/domain/medicine"
	pharmacyDomain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/identity"
	"github.com/BruksfildServices01/medifind/internal/imaging"
	"github.com/BruksfildServices01/medifind/internal/logger"
	"github.com/BruksfildServices01/medifind/internal/models"
)

// ObjectStore persists encoded images and returns their public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type UploadMedicineImage struct {
	medicines  medicineDomain.Repository
	pharmacies pharmacyDomain.Repository
	store      ObjectStore
	audit      audit.Sink
}

// NewUploadMedicineImage accepts a nil store; uploads then report the
// feature as unavailable.
func NewUploadMedicineImage(
	medicines medicineDomain.Repository,
	pharmacies pharmacyDomain.Repository,
	store ObjectStore,
	audit audit.Sink,
) *UploadMedicineImage {
	return &UploadMedicineImage{
		medicines:  medicines,
		pharmacies: pharmacies,
		store:      store,
		audit:      audit,
	}
}

func (uc *UploadMedicineImage) Execute(
	ctx context.Context,
	caller identity.Caller,
	id uint,
	image io.Reader,
) (*models.Medicine, error) {

	if uc.store == nil {
		return nil, httperr.ErrUnavailable("image_storage_disabled", "Image storage is not configured")
	}

	m, p, err := loadOwned(ctx, uc.medicines, uc.pharmacies, caller, id, "update")
	if err != nil {
		return nil, err
	}

	body, err := imaging.ToWebP(image, imaging.DefaultMaxEdge)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupported) {
			return nil, httperr.ErrValidation("invalid_image", "Image must be a JPEG, PNG or WebP file")
		}
		return nil, httperr.ErrInternal("failed_to_process_image", err)
	}

	key := fmt.Sprintf("medicines/%d/%s.webp", m.ID, uuid.NewString())
	url, err := uc.store.Put(ctx, key, imaging.ContentType, body)
	if err != nil {
		return nil, httperr.ErrInternal("failed_to_store_image", err)
	}

	m.ImageURL = url
	if err := uc.medicines.Update(ctx, m); err != nil {
		return nil, err
	}
	m.Pharmacy = p.Summary()

	logger.FromContext(ctx).Info("medicine image stored",
		zap.Uint("medicine_id", m.ID),
		zap.String("key", key),
		zap.Int("bytes", len(body)),
	)

	uc.audit.Dispatch(audit.Event{
		PharmacyID: audit.Ptr(p.ID),
		UserID:     audit.Ptr(caller.ID),
		Action:     audit.ActionMedicineUpdated,
		Entity:     "medicine",
		EntityID:   audit.Ptr(m.ID),
		Metadata:   map[string]any{"image_url": url},
	})

	return m, nil
}
