package medicine

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/medifind/internal/audit"
	medicineDomain "github.com/BruksfildServices01/medifind/internal/domain/medicine"
	pharmacyDomain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/identity"
	"github.com/BruksfildServices01/medifind/internal/models"
)

type UpdateMedicineInput struct {
	Name                 *string
	Price                *float64
	Stock                *int
	Brand                *string
	Category             *string
	Dosage               *string
	Description          *string
	ExpiryDate           *time.Time
	PrescriptionRequired *bool
}

type UpdateMedicine struct {
	medicines  medicineDomain.Repository
	pharmacies pharmacyDomain.Repository
	audit      audit.Sink
}

func NewUpdateMedicine(
	medicines medicineDomain.Repository,
	pharmacies pharmacyDomain.Repository,
	audit audit.Sink,
) *UpdateMedicine {
	return &UpdateMedicine{
		medicines:  medicines,
		pharmacies: pharmacies,
		audit:      audit,
	}
}

func (uc *UpdateMedicine) Execute(
	ctx context.Context,
	caller identity.Caller,
	id uint,
	in UpdateMedicineInput,
) (*models.Medicine, error) {

	m, p, err := loadOwned(ctx, uc.medicines, uc.pharmacies, caller, id, "update")
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrValidation("invalid_name", "Name cannot be empty")
		}
		m.Name = name
	}
	if err := validateAmounts(in.Price, in.Stock); err != nil {
		return nil, err
	}
	if in.Price != nil {
		m.Price = *in.Price
	}
	if in.Stock != nil {
		m.Stock = *in.Stock
	}
	if in.Brand != nil {
		m.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Category != nil {
		m.Category = strings.TrimSpace(*in.Category)
	}
	if in.Dosage != nil {
		m.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Description != nil {
		m.Description = strings.TrimSpace(*in.Description)
	}
	if in.ExpiryDate != nil {
		m.ExpiryDate = in.ExpiryDate
	}
	if in.PrescriptionRequired != nil {
		m.PrescriptionRequired = *in.PrescriptionRequired
	}

	if err := uc.medicines.Update(ctx, m); err != nil {
		return nil, err
	}
	m.Pharmacy = p.Summary()

	uc.audit.Dispatch(audit.Event{
		PharmacyID: audit.Ptr(p.ID),
		UserID:     audit.Ptr(caller.ID),
		Action:     audit.ActionMedicineUpdated,
		Entity:     "medicine",
		EntityID:   audit.Ptr(m.ID),
	})

	return m, nil
}
