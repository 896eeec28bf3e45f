package pharmacy

import (
	"context"

	"github.com/BruksfildServices01/medifind/internal/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Pharmacy) error

	// GetByID loads the pharmacy with the owner's name and email.
	GetByID(ctx context.Context, id uint) (*models.Pharmacy, error)

	// GetByOwner returns the pharmacy whose owning user is userID.
	GetByOwner(ctx context.Context, userID uint) (*models.Pharmacy, error)

	List(ctx context.Context) ([]models.Pharmacy, error)
	Update(ctx context.Context, p *models.Pharmacy) error
	Delete(ctx context.Context, id uint) error

	// IDsMatching returns ids of pharmacies whose address or location
	// contains location and whose name contains name. Empty arguments
	// do not constrain.
	IDsMatching(ctx context.Context, location, name string) ([]uint, error)

	// IDsOwnedBy returns ids of every pharmacy owned by userID.
	IDsOwnedBy(ctx context.Context, userID uint) ([]uint, error)
}

// Cache is a read-through cache for single pharmacy lookups.
type Cache interface {
	Get(ctx context.Context, id uint) (*models.Pharmacy, error)
	Set(ctx context.Context, p *models.Pharmacy) error
	Invalidate(ctx context.Context, id uint) error
}
