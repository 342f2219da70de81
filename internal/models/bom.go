package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BomStatus is the lifecycle state of a BOM version, mapped from the legacy
// source's small numeric enum.
type BomStatus string

const (
	BomStatusDraft    BomStatus = "draft"
	BomStatusActive   BomStatus = "active"
	BomStatusArchived BomStatus = "archived"
)

// BomStatusFromLegacy maps the legacy numeric status; unknown values are
// treated as draft.
func BomStatusFromLegacy(status int) BomStatus {
	switch status {
	case 1:
		return BomStatusActive
	case 2:
		return BomStatusArchived
	default:
		return BomStatusDraft
	}
}

var ErrBadQuantity = errors.New("quantity must be positive")

// BomVersion is one bill-of-materials revision of a product.
type BomVersion struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ProductID string    `gorm:"column:product_id;index;uniqueIndex:idx_bom_versions_product_version"`
	Version   int       `gorm:"column:version;uniqueIndex:idx_bom_versions_product_version"`
	Status    BomStatus `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (BomVersion) TableName() string { return "bom_versions" }

func NewBomVersion(productID string, version int, status BomStatus) (*BomVersion, error) {
	if productID == "" {
		return nil, ErrEmptyCode
	}
	if version < 1 {
		return nil, errors.New("version must be positive")
	}
	return &BomVersion{
		ID:        uuid.New().String(),
		ProductID: productID,
		Version:   version,
		Status:    status,
	}, nil
}

func (v *BomVersion) SetStatus(status BomStatus) {
	v.Status = status
}

// BomLine is one component row of a BOM version.
type BomLine struct {
	ID           string    `gorm:"column:id;primaryKey"`
	BomVersionID string    `gorm:"column:bom_version_id;index"`
	ItemID       string    `gorm:"column:item_id;index"`
	Quantity     float64   `gorm:"column:quantity"`
	Position     int       `gorm:"column:position"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for GORM
func (BomLine) TableName() string { return "bom_lines" }

func NewBomLine(bomVersionID, itemID string, quantity float64, position int) (*BomLine, error) {
	if bomVersionID == "" || itemID == "" {
		return nil, ErrEmptyCode
	}
	if quantity <= 0 {
		return nil, ErrBadQuantity
	}
	return &BomLine{
		ID:           uuid.New().String(),
		BomVersionID: bomVersionID,
		ItemID:       itemID,
		Quantity:     quantity,
		Position:     position,
	}, nil
}
