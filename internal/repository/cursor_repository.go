package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CursorRepository struct {
	db *gorm.DB
}

func NewCursorRepository(db *gorm.DB) *CursorRepository {
	return &CursorRepository{db: db}
}

// Get retrieves the cursor for one (connection, source entity); nil when no
// delta has been recorded yet
func (r *CursorRepository) Get(ctx context.Context, connectionID, sourceEntity string) (*models.SyncCursor, error) {
	var cursor models.SyncCursor
	result := r.db.WithContext(ctx).
		First(&cursor, "connection_id = ? AND source_entity = ?", connectionID, sourceEntity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cursor: %w", result.Error)
	}
	return &cursor, nil
}

// Upsert creates or advances a cursor row
func (r *CursorRepository) Upsert(ctx context.Context, cursor *models.SyncCursor) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "connection_id"}, {Name: "source_entity"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_processed_key", "last_sync_at"}),
	}).Create(cursor).Error
}
