package models

import "time"

// SyncRunError is one structured, append-only error captured during a sync
// run. A bad source row produces one of these and the batch continues; the
// row's external key scopes the error for the operator.
type SyncRunError struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	RunID              string    `gorm:"column:run_id;index"`
	EntityType         string    `gorm:"column:entity_type"`
	ExternalEntityKind *string   `gorm:"column:external_entity_kind"`
	ExternalKey        *int64    `gorm:"column:external_key"`
	Message            string    `gorm:"column:message"`
	Details            *string   `gorm:"column:details"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for GORM
func (SyncRunError) TableName() string {
	return "sync_run_errors"
}
