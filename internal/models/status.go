package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatusKind is the small fixed taxonomy the legacy source groups statuses
// by. Unknown legacy kinds fall back to StatusKindComponent.
type StatusKind string

const (
	StatusKindComponent StatusKind = "component"
	StatusKindOrder     StatusKind = "order"
	StatusKindRequest   StatusKind = "request"
)

// StatusKindFromLegacy maps the legacy numeric kind to the local taxonomy.
func StatusKindFromLegacy(kind int) StatusKind {
	switch kind {
	case 2:
		return StatusKindOrder
	case 3:
		return StatusKindRequest
	default:
		return StatusKindComponent
	}
}

// StatusGroup is the synthetic parent created (or reused) per status kind
// before child statuses are linked under it.
type StatusGroup struct {
	ID        string     `gorm:"column:id;primaryKey"`
	Kind      StatusKind `gorm:"column:kind;uniqueIndex"`
	Name      string     `gorm:"column:name"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (StatusGroup) TableName() string { return "status_groups" }

func NewStatusGroup(kind StatusKind, name string) (*StatusGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &StatusGroup{ID: uuid.New().String(), Kind: kind, Name: name}, nil
}

// Status is one workflow status inside a status group.
type Status struct {
	ID        string    `gorm:"column:id;primaryKey"`
	GroupID   string    `gorm:"column:group_id;index"`
	Name      string    `gorm:"column:name"`
	SortOrder int       `gorm:"column:sort_order"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (Status) TableName() string { return "statuses" }

func NewStatus(groupID, name string, sortOrder int) (*Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if groupID == "" {
		return nil, ErrEmptyCode
	}
	return &Status{ID: uuid.New().String(), GroupID: groupID, Name: name, SortOrder: sortOrder}, nil
}

func (s *Status) Update(name string, sortOrder int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.Name = name
	s.SortOrder = sortOrder
	return nil
}
