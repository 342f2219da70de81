package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"gorm.io/gorm"
)

type BomRepository struct {
	db *gorm.DB
}

func NewBomRepository(db *gorm.DB) *BomRepository {
	return &BomRepository{db: db}
}

func (r *BomRepository) ByIDs(ctx context.Context, ids []string) ([]models.BomVersion, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.BomVersion
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list)
	return list, result.Error
}

// ByProductVersion retrieves one revision by its (product, version) key
func (r *BomRepository) ByProductVersion(ctx context.Context, productID string, version int) (*models.BomVersion, error) {
	var v models.BomVersion
	result := r.db.WithContext(ctx).First(&v, "product_id = ? AND version = ?", productID, version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bom version: %w", result.Error)
	}
	return &v, nil
}

func (r *BomRepository) Create(ctx context.Context, v *models.BomVersion) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *BomRepository) Update(ctx context.Context, v *models.BomVersion) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// ReplaceLines swaps the full line set of one version
func (r *BomRepository) ReplaceLines(ctx context.Context, bomVersionID string, lines []models.BomLine) error {
	if err := r.db.WithContext(ctx).
		Where("bom_version_id = ?", bomVersionID).
		Delete(&models.BomLine{}).Error; err != nil {
		return fmt.Errorf("failed to delete bom lines: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// Delete removes a version and its lines
func (r *BomRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Where("bom_version_id = ?", id).
		Delete(&models.BomLine{}).Error; err != nil {
		return fmt.Errorf("failed to delete bom lines: %w", err)
	}
	return r.db.WithContext(ctx).Delete(&models.BomVersion{}, "id = ?", id).Error
}
