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
	"github.com/BruksfildServices01/medifind/internal/policy"
)

type CreateMedicineInput struct {
	// PharmacyID is optional; the caller's own pharmacy is used when nil.
	PharmacyID *uint

	Name                 string
	Price                *float64
	Stock                *int
	Brand                string
	Category             string
	Dosage               string
	Description          string
	ExpiryDate           *time.Time
	PrescriptionRequired bool
}

type CreateMedicine struct {
	medicines  medicineDomain.Repository
	pharmacies pharmacyDomain.Repository
	audit      audit.Sink
}

func NewCreateMedicine(
	medicines medicineDomain.Repository,
	pharmacies pharmacyDomain.Repository,
	audit audit.Sink,
) *CreateMedicine {
	return &CreateMedicine{
		medicines:  medicines,
		pharmacies: pharmacies,
		audit:      audit,
	}
}

func (uc *CreateMedicine) Execute(
	ctx context.Context,
	caller identity.Caller,
	in CreateMedicineInput,
) (*models.Medicine, error) {

	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil || in.Stock == nil {
		return nil, httperr.ErrValidation("missing_required_fields", "Name, price, and stock are required")
	}
	if err := validateAmounts(in.Price, in.Stock); err != nil {
		return nil, err
	}

	pharmacy, err := uc.targetPharmacy(ctx, caller, in.PharmacyID)
	if err != nil {
		return nil, err
	}

	m := models.Medicine{
		PharmacyID:           pharmacy.ID,
		Name:                 name,
		Price:                *in.Price,
		Stock:                *in.Stock,
		Brand:                strings.TrimSpace(in.Brand),
		Category:             strings.TrimSpace(in.Category),
		Dosage:               strings.TrimSpace(in.Dosage),
		Description:          strings.TrimSpace(in.Description),
		ExpiryDate:           in.ExpiryDate,
		PrescriptionRequired: in.PrescriptionRequired,
	}

	if err := uc.medicines.Create(ctx, &m); err != nil {
		return nil, err
	}
	m.Pharmacy = pharmacy.Summary()

	uc.audit.Dispatch(audit.Event{
		PharmacyID: audit.Ptr(pharmacy.ID),
		UserID:     audit.Ptr(caller.ID),
		Action:     audit.ActionMedicineCreated,
		Entity:     "medicine",
		EntityID:   audit.Ptr(m.ID),
		Metadata:   map[string]any{"name": m.Name, "stock": m.Stock},
	})

	return &m, nil
}

func (uc *CreateMedicine) targetPharmacy(ctx context.Context, caller identity.Caller, id *uint) (*models.Pharmacy, error) {
	if id == nil {
		return callerPharmacy(ctx, uc.pharmacies, caller)
	}

	p, err := uc.pharmacies.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwner(p, caller.ID, "not_pharmacy_owner",
		"You can only add medicines to your own pharmacy"); err != nil {
		return nil, err
	}
	return p, nil
}

func validateAmounts(price *float64, stock *int) error {
	if price != nil && *price < 0 {
		return httperr.ErrValidation("invalid_price", "Price must be zero or positive")
	}
	if stock != nil && *stock < 0 {
		return httperr.ErrValidation("invalid_stock", "Stock must be zero or positive")
	}
	return nil
}
