package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"gorm.io/gorm"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// GroupByKind retrieves the status group of one kind, nil when it does not
// exist yet
func (r *StatusRepository) GroupByKind(ctx context.Context, kind models.StatusKind) (*models.StatusGroup, error) {
	var g models.StatusGroup
	result := r.db.WithContext(ctx).First(&g, "kind = ?", kind)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get status group: %w", result.Error)
	}
	return &g, nil
}

func (r *StatusRepository) CreateGroup(ctx context.Context, g *models.StatusGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *StatusRepository) ByIDs(ctx context.Context, ids []string) ([]models.Status, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Status
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

// ByName retrieves a status by name within one group
func (r *StatusRepository) ByName(ctx context.Context, groupID, name string) (*models.Status, error) {
	var s models.Status
	result := r.db.WithContext(ctx).First(&s, "group_id = ? AND name = ?", groupID, name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get status: %w", result.Error)
	}
	return &s, nil
}

func (r *StatusRepository) Create(ctx context.Context, s *models.Status) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StatusRepository) Update(ctx context.Context, s *models.Status) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *StatusRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Status{}, "id = ?", id).Error
}
