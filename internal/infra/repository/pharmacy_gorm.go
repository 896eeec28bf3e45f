package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/models"
)

type PharmacyGormRepository struct {
	db *gorm.DB
}

func NewPharmacyGormRepository(db *gorm.DB) *PharmacyGormRepository {
	return &PharmacyGormRepository{db: db}
}

func withOwner(tx *gorm.DB) *gorm.DB {
	return tx.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email")
	})
}

func (r *PharmacyGormRepository) Create(ctx context.Context, p *models.Pharmacy) error {
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(p).Error; err != nil {
		return httperr.ErrInternal("failed_to_create_pharmacy", err)
	}
	return nil
}

func (r *PharmacyGormRepository) GetByID(ctx context.Context, id uint) (*models.Pharmacy, error) {
	var p models.Pharmacy
	if err := withOwner(r.db.WithContext(ctx)).First(&p, id).Error; err != nil {
		return nil, translate(err, "pharmacy_not_found", "Pharmacy not found", "failed_to_get_pharmacy")
	}
	return &p, nil
}

func (r *PharmacyGormRepository) GetByOwner(ctx context.Context, userID uint) (*models.Pharmacy, error) {
	var p models.Pharmacy
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		First(&p).Error; err != nil {
		return nil, translate(err, "pharmacy_not_found", "Pharmacy not found", "failed_to_get_pharmacy")
	}
	return &p, nil
}

func (r *PharmacyGormRepository) List(ctx context.Context) ([]models.Pharmacy, error) {
	var out []models.Pharmacy
	if err := withOwner(r.db.WithContext(ctx)).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.ErrInternal("failed_to_list_pharmacies", err)
	}
	return out, nil
}

func (r *PharmacyGormRepository) Update(ctx context.Context, p *models.Pharmacy) error {
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(p).Error; err != nil {
		return httperr.ErrInternal("failed_to_update_pharmacy", err)
	}
	return nil
}

// Delete removes only the pharmacy row; its medicines stay behind.
func (r *PharmacyGormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Pharmacy{}, id)
	if res.Error != nil {
		return httperr.ErrInternal("failed_to_delete_pharmacy", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("pharmacy_not_found", "Pharmacy not found")
	}
	return nil
}

func (r *PharmacyGormRepository) IDsMatching(ctx context.Context, location, name string) ([]uint, error) {
	q := r.db.WithContext(ctx).Model(&models.Pharmacy{})

	if location != "" {
		like := likePattern(location)
		q = q.Where("(LOWER(address)"+likeClause+" OR LOWER(location)"+likeClause+")", like, like)
	}
	if name != "" {
		q = q.Where("LOWER(name)"+likeClause, likePattern(name))
	}

	var ids []uint
	if err := q.Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, httperr.ErrInternal("failed_to_match_pharmacies", err)
	}
	return ids, nil
}

func (r *PharmacyGormRepository) IDsOwnedBy(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Pharmacy{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, httperr.ErrInternal("failed_to_match_pharmacies", err)
	}
	return ids, nil
}
