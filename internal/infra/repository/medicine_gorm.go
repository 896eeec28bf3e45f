package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/medifind/internal/domain/medicine"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/models"
)

type MedicineGormRepository struct {
	db *gorm.DB
}

func NewMedicineGormRepository(db *gorm.DB) *MedicineGormRepository {
	return &MedicineGormRepository{db: db}
}

func withPharmacy(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Pharmacy", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "address", "phone", "location")
	})
}

func (r *MedicineGormRepository) Create(ctx context.Context, m *models.Medicine) error {
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(m).Error; err != nil {
		return httperr.ErrInternal("failed_to_create_medicine", err)
	}
	return nil
}

func (r *MedicineGormRepository) GetByID(ctx context.Context, id uint) (*models.Medicine, error) {
	var m models.Medicine
	if err := withPharmacy(r.db.WithContext(ctx)).First(&m, id).Error; err != nil {
		return nil, translate(err, "medicine_not_found", "Medicine not found", "failed_to_get_medicine")
	}
	return &m, nil
}

func applyFilter(q *gorm.DB, f medicine.Filter) *gorm.DB {
	if f.PharmacyID != nil {
		q = q.Where("pharmacy_id = ?", *f.PharmacyID)
	}
	if f.PharmacyIDs != nil {
		q = q.Where("pharmacy_id IN ?", f.PharmacyIDs)
	}
	if f.Name != "" {
		q = q.Where("LOWER(name)"+likeClause, likePattern(f.Name))
	}
	if f.Category != "" {
		q = q.Where("LOWER(category)"+likeClause, likePattern(f.Category))
	}
	if f.InStock {
		q = q.Where("stock > ?", 0)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	return q
}

func (r *MedicineGormRepository) Search(ctx context.Context, f medicine.Filter) ([]models.Medicine, int64, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Medicine{}), f).
		Count(&total).Error; err != nil {
		return nil, 0, httperr.ErrInternal("failed_to_count_medicines", err)
	}

	var items []models.Medicine
	if err := applyFilter(withPharmacy(r.db.WithContext(ctx)), f).
		Order("name ASC").
		Order("id ASC").
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, httperr.ErrInternal("failed_to_list_medicines", err)
	}

	return items, total, nil
}

func (r *MedicineGormRepository) ListByPharmacy(ctx context.Context, pharmacyID uint) ([]models.Medicine, error) {
	var items []models.Medicine
	if err := withPharmacy(r.db.WithContext(ctx)).
		Where("pharmacy_id = ?", pharmacyID).
		Order("name ASC").
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, httperr.ErrInternal("failed_to_list_medicines", err)
	}
	return items, nil
}

func (r *MedicineGormRepository) Update(ctx context.Context, m *models.Medicine) error {
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(m).Error; err != nil {
		return httperr.ErrInternal("failed_to_update_medicine", err)
	}
	return nil
}

func (r *MedicineGormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Medicine{}, id)
	if res.Error != nil {
		return httperr.ErrInternal("failed_to_delete_medicine", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("medicine_not_found", "Medicine not found")
	}
	return nil
}
