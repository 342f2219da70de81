package models

import "time"

// SyncCursor stores the last processed external key per (connection, source
// entity), enabling incremental delta reads. The key is the maximum external
// numeric id seen so far; it only moves forward. The (connection_id,
// source_entity) composite key is an on-disk contract between runs.
type SyncCursor struct {
	ConnectionID     string    `gorm:"column:connection_id;primaryKey"`
	SourceEntity     string    `gorm:"column:source_entity;primaryKey"`
	LastProcessedKey int64     `gorm:"column:last_processed_key"`
	LastSyncAt       time.Time `gorm:"column:last_sync_at"`
}

// TableName specifies the table name for GORM
func (SyncCursor) TableName() string {
	return "sync_cursors"
}
