package pharmacy

import (
	"context"

	"github.com/BruksfildServices01/medifind/internal/audit"
	domain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	"github.com/BruksfildServices01/medifind/internal/identity"
)

// DeletePharmacy removes the pharmacy record only. Its medicines are
// left in place and keep pointing at the deleted id.
type DeletePharmacy struct {
	repo  domain.Repository
	cache domain.Cache
	audit audit.Sink
}

func NewDeletePharmacy(repo domain.Repository, cache domain.Cache, audit audit.Sink) *DeletePharmacy {
	return &DeletePharmacy{repo: repo, cache: cache, audit: audit}
}

func (uc *DeletePharmacy) Execute(ctx context.Context, caller identity.Caller, id uint) error {
	p, err := loadOwned(ctx, uc.repo, caller, id, "delete")
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, p.ID); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, p.ID)

	uc.audit.Dispatch(audit.Event{
		PharmacyID: audit.Ptr(p.ID),
		UserID:     audit.Ptr(caller.ID),
		Action:     audit.ActionPharmacyDeleted,
		Entity:     "pharmacy",
		EntityID:   audit.Ptr(p.ID),
		Metadata:   map[string]any{"name": p.Name},
	})
	return nil
}
