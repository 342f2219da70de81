package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Paashik/MyIS-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Get retrieves one nomenclature counter, nil when it was never seeded. With
// lock the counter row is locked for the enclosing transaction.
func (r *SequenceRepository) Get(ctx context.Context, itemKind string, lock bool) (*models.ItemSequence, error) {
	q := r.db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var seq models.ItemSequence
	result := q.First(&seq, "item_kind = ?", itemKind)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sequence: %w", result.Error)
	}
	return &seq, nil
}

// Save creates or updates a counter row
func (r *SequenceRepository) Save(ctx context.Context, seq *models.ItemSequence) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"prefix", "next_number"}),
	}).Create(seq).Error
}
