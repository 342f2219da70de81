package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) ByIDs(ctx context.Context, ids []string) ([]models.CustomerOrder, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.CustomerOrder
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

func (r *OrderRepository) ByNumber(ctx context.Context, number string) (*models.CustomerOrder, error) {
	var o models.CustomerOrder
	result := r.db.WithContext(ctx).First(&o, "number = ?", number)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", result.Error)
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *models.CustomerOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) Update(ctx context.Context, o *models.CustomerOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.CustomerOrder{}, "id = ?", id).Error
}
