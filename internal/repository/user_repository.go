package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.User
	result := r.db.WithContext(ctx).Preload("Roles").Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

func (r *UserRepository) ByLogin(ctx context.Context, login string) (*models.User, error) {
	var u models.User
	result := r.db.WithContext(ctx).Preload("Roles").First(&u, "login = ?", login)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", result.Error)
	}
	return &u, nil
}

// ListRoles retrieves the full role dictionary
func (r *UserRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	result := r.db.WithContext(ctx).Order("code").Find(&roles)
	return roles, result.Error
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// Update saves user columns and replaces the role association with the set
// carried on the model
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Model(u).Association("Roles").Replace(u.Roles); err != nil {
		return fmt.Errorf("failed to replace roles: %w", err)
	}
	return r.db.WithContext(ctx).Omit("Roles").Save(u).Error
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_roles WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}

func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}
