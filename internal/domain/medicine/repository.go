package medicine

import (
	"context"

	"github.com/BruksfildServices01/medifind/internal/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Medicine) error

	// GetByID loads the medicine joined with its pharmacy's display
	// fields.
	GetByID(ctx context.Context, id uint) (*models.Medicine, error)

	Search(ctx context.Context, f Filter) ([]models.Medicine, int64, error)
	ListByPharmacy(ctx context.Context, pharmacyID uint) ([]models.Medicine, error)

	Update(ctx context.Context, m *models.Medicine) error
	Delete(ctx context.Context, id uint) error
}
