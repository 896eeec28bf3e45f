package pharmacy

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/medifind/internal/audit"
	domain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/identity"
	"github.com/BruksfildServices01/medifind/internal/models"
	"github.com/BruksfildServices01/medifind/internal/validators"
)

type CreatePharmacyInput struct {
	Name          string
	Address       string
	Phone         string
	Email         string
	LicenseNumber string
	Location      string
}

type CreatePharmacy struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewCreatePharmacy(repo domain.Repository, audit audit.Sink) *CreatePharmacy {
	return &CreatePharmacy{repo: repo, audit: audit}
}

func (uc *CreatePharmacy) Execute(
	ctx context.Context,
	caller identity.Caller,
	in CreatePharmacyInput,
) (*models.Pharmacy, error) {

	p := models.Pharmacy{
		UserID:        caller.ID,
		Name:          strings.TrimSpace(in.Name),
		Address:       strings.TrimSpace(in.Address),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
		Location:      strings.TrimSpace(in.Location),
	}
	if err := validate(&p); err != nil {
		return nil, err
	}

	// One pharmacy per operator, checked here only; admins may register
	// several.
	if !caller.IsAdmin() {
		_, err := uc.repo.GetByOwner(ctx, caller.ID)
		switch {
		case err == nil:
			return nil, httperr.ErrValidation("pharmacy_already_registered", "You already registered a pharmacy")
		case httperr.KindOf(err) != httperr.KindNotFound:
			return nil, err
		}
	}

	if err := uc.repo.Create(ctx, &p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PharmacyID: audit.Ptr(p.ID),
		UserID:     audit.Ptr(caller.ID),
		Action:     audit.ActionPharmacyCreated,
		Entity:     "pharmacy",
		EntityID:   audit.Ptr(p.ID),
	})

	return &p, nil
}

func validate(p *models.Pharmacy) error {
	if p.Name == "" || p.Address == "" || p.Phone == "" {
		return httperr.ErrValidation("missing_required_fields", "Name, address and phone are required")
	}
	if p.Email != "" {
		if !validators.IsEmail(p.Email) {
			return httperr.ErrValidation("invalid_email", "Email is not valid")
		}
	}
	return nil
}
