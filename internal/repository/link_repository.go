package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"github.com/Paashik/MyIS-sub000/internal/sync"
	"gorm.io/gorm"
)

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// ByExternalIDs retrieves links of one identity space by external id
func (r *LinkRepository) ByExternalIDs(ctx context.Context, entityType, system, kind string, ids []int64) ([]models.ExternalLink, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var links []models.ExternalLink
	result := r.db.WithContext(ctx).
		Where("local_entity_type = ? AND external_system = ? AND external_entity_kind = ? AND external_id IN ?", entityType, system, kind, ids).
		Find(&links)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load links: %w", result.Error)
	}
	return links, nil
}

// ByKind retrieves every link of one identity space
func (r *LinkRepository) ByKind(ctx context.Context, entityType, system, kind string) ([]models.ExternalLink, error) {
	var links []models.ExternalLink
	result := r.db.WithContext(ctx).
		Where("local_entity_type = ? AND external_system = ? AND external_entity_kind = ?", entityType, system, kind).
		Find(&links)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load links: %w", result.Error)
	}
	return links, nil
}

// Create registers a new link. An identity tuple already pointing at a
// different local entity is a conflict, never repointed.
func (r *LinkRepository) Create(ctx context.Context, link *models.ExternalLink) error {
	var existing models.ExternalLink
	result := r.db.WithContext(ctx).
		Where("local_entity_type = ? AND external_system = ? AND external_entity_kind = ? AND external_id = ?",
			link.LocalEntityType, link.ExternalSystem, link.ExternalEntityKind, link.ExternalID).
		First(&existing)
	if result.Error == nil {
		if existing.LocalEntityID == link.LocalEntityID {
			return nil
		}
		return sync.ErrLinkConflict
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check link identity: %w", result.Error)
	}
	return r.db.WithContext(ctx).Create(link).Error
}

// Touch refreshes synced_at and, when given, the source type tag
func (r *LinkRepository) Touch(ctx context.Context, id string, syncedAt time.Time, sourceType *string) error {
	updates := map[string]interface{}{
		"synced_at":  syncedAt,
		"updated_at": time.Now(),
	}
	if sourceType != nil {
		updates["source_type"] = *sourceType
	}
	result := r.db.WithContext(ctx).Model(&models.ExternalLink{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to touch link: %w", result.Error)
	}
	return nil
}

// Delete removes link rows by id
func (r *LinkRepository) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.ExternalLink{}).Error
}
