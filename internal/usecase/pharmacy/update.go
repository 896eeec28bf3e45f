package pharmacy

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/medifind/internal/audit"
	domain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	"github.com/BruksfildServices01/medifind/internal/identity"
	"github.com/BruksfildServices01/medifind/internal/logger"
	"github.com/BruksfildServices01/medifind/internal/models"
	"github.com/BruksfildServices01/medifind/internal/policy"
)

type UpdatePharmacyInput struct {
	Name          *string
	Address       *string
	Phone         *string
	Email         *string
	LicenseNumber *string
	Location      *string
}

type UpdatePharmacy struct {
	repo  domain.Repository
	cache domain.Cache
	audit audit.Sink
}

func NewUpdatePharmacy(repo domain.Repository, cache domain.Cache, audit audit.Sink) *UpdatePharmacy {
	return &UpdatePharmacy{repo: repo, cache: cache, audit: audit}
}

// loadOwned fetches the pharmacy and applies the ownership check shared
// by update and delete.
func loadOwned(ctx context.Context, repo domain.Repository, caller identity.Caller, id uint, verb string) (*models.Pharmacy, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwner(p, caller.ID, "not_pharmacy_owner",
		"You are not authorized to "+verb+" this pharmacy"); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *UpdatePharmacy) Execute(
	ctx context.Context,
	caller identity.Caller,
	id uint,
	in UpdatePharmacyInput,
) (*models.Pharmacy, error) {

	p, err := loadOwned(ctx, uc.repo, caller, id, "update")
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&p.Name, in.Name)
	set(&p.Address, in.Address)
	set(&p.Phone, in.Phone)
	set(&p.LicenseNumber, in.LicenseNumber)
	set(&p.Location, in.Location)
	if in.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}

	if err := validate(p); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, p.ID)

	uc.audit.Dispatch(audit.Event{
		PharmacyID: audit.Ptr(p.ID),
		UserID:     audit.Ptr(caller.ID),
		Action:     audit.ActionPharmacyUpdated,
		Entity:     "pharmacy",
		EntityID:   audit.Ptr(p.ID),
	})

	return p, nil
}

func invalidate(ctx context.Context, cache domain.Cache, id uint) {
	if err := cache.Invalidate(ctx, id); err != nil {
		logger.FromContext(ctx).Warn("pharmacy cache invalidation failed",
			zap.Uint("pharmacy_id", id), zap.Error(err))
	}
}
