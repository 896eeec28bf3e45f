package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrValidation("user_already_exists", "User already exists")
		}
		return httperr.ErrInternal("failed_to_create_user", err)
	}
	return nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "user_not_found", "User not found", "failed_to_get_user")
	}
	return &u, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, translate(err, "user_not_found", "User not found", "failed_to_get_user")
	}
	return &u, nil
}

func (r *UserGormRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, httperr.ErrInternal("failed_to_list_users", err)
	}
	return users, nil
}

func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrValidation("email_already_in_use", "Email already in use")
		}
		return httperr.ErrInternal("failed_to_update_user", err)
	}
	return nil
}

func (r *UserGormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return httperr.ErrInternal("failed_to_delete_user", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("user_not_found", "User not found")
	}
	return nil
}
