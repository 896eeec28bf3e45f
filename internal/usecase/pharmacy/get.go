package pharmacy

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/medifind/internal/domain/pharmacy"
	"github.com/BruksfildServices01/medifind/internal/identity"
	"github.com/BruksfildServices01/medifind/internal/logger"
	"github.com/BruksfildServices01/medifind/internal/models"
)

type ListPharmacies struct {
	repo domain.Repository
}

func NewListPharmacies(repo domain.Repository) *ListPharmacies {
	return &ListPharmacies{repo: repo}
}

func (uc *ListPharmacies) Execute(ctx context.Context) ([]models.Pharmacy, error) {
	out, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Pharmacy{}
	}
	return out, nil
}

// GetPharmacy reads through the cache. Cache failures are logged and
// fall back to the repository.
type GetPharmacy struct {
	repo  domain.Repository
	cache domain.Cache
}

func NewGetPharmacy(repo domain.Repository, cache domain.Cache) *GetPharmacy {
	return &GetPharmacy{repo: repo, cache: cache}
}

func (uc *GetPharmacy) Execute(ctx context.Context, id uint) (*models.Pharmacy, error) {
	log := logger.FromContext(ctx)

	cached, err := uc.cache.Get(ctx, id)
	if err != nil {
		log.Warn("pharmacy cache read failed", zap.Uint("pharmacy_id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, p); err != nil {
		log.Warn("pharmacy cache write failed", zap.Uint("pharmacy_id", id), zap.Error(err))
	}
	return p, nil
}

type GetMyPharmacy struct {
	repo domain.Repository
}

func NewGetMyPharmacy(repo domain.Repository) *GetMyPharmacy {
	return &GetMyPharmacy{repo: repo}
}

func (uc *GetMyPharmacy) Execute(ctx context.Context, caller identity.Caller) (*models.Pharmacy, error) {
	return uc.repo.GetByOwner(ctx, caller.ID)
}
