package sync

import (
	"context"
	"time"

	"github.com/Paashik/MyIS-sub000/internal/models"
)

// loadCursor returns the read window's lower bound. Only delta runs use the
// stored cursor; a delta run without one behaves as full for that entity.
func loadCursor(ctx context.Context, cs CursorStore, run *Run, sourceEntity string) (*int64, error) {
	if run.Mode != ModeDelta {
		return nil, nil
	}
	cursor, err := cs.Get(ctx, run.ConnectionID, sourceEntity)
	if err != nil {
		return nil, err
	}
	if cursor == nil {
		return nil, nil
	}
	key := cursor.LastProcessedKey
	return &key, nil
}

// saveCursor persists the advanced cursor at the end of a pass. Callers
// only invoke it on non-dry-run passes that processed at least one row; the
// cursor never moves backwards.
func saveCursor(ctx context.Context, cs CursorStore, connectionID, sourceEntity string, key int64) error {
	existing, err := cs.Get(ctx, connectionID, sourceEntity)
	if err != nil {
		return err
	}
	if existing != nil && existing.LastProcessedKey >= key {
		key = existing.LastProcessedKey
	}
	return cs.Upsert(ctx, &models.SyncCursor{
		ConnectionID:     connectionID,
		SourceEntity:     sourceEntity,
		LastProcessedKey: key,
		LastSyncAt:       time.Now(),
	})
}
