package repository

import (
	"context"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"gorm.io/gorm"
)

type RunErrorRepository struct {
	db *gorm.DB
}

func NewRunErrorRepository(db *gorm.DB) *RunErrorRepository {
	return &RunErrorRepository{db: db}
}

// CreateBatch persists the structured errors of one run in a single insert
func (r *RunErrorRepository) CreateBatch(ctx context.Context, errs []models.SyncRunError) error {
	if len(errs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&errs).Error
}
