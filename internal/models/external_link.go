package models

import "time"

// ExternalSystemComponent2020 identifies the legacy desktop system this
// engine reconciles from. It is the only external system wired today, but
// the ledger keys on it so a second source can coexist later.
const ExternalSystemComponent2020 = "Component2020"

// Local entity types stored in the identity ledger.
const (
	EntityTypeBodyType     = "BodyType"
	EntityTypeCurrency     = "Currency"
	EntityTypeUnit         = "Unit"
	EntityTypeParameterSet = "ParameterSet"
	EntityTypeStatus       = "Status"
	EntityTypeStatusGroup  = "StatusGroup"
	EntityTypeCounterparty = "Counterparty"
	EntityTypePerson       = "Person"
	EntityTypeUser         = "User"
	EntityTypeItemGroup    = "ItemGroup"
	EntityTypeItem         = "Item"
	EntityTypeProduct      = "Product"
	EntityTypeOrder        = "CustomerOrder"
	EntityTypeBomVersion   = "BomVersion"
	EntityTypeBomLine      = "BomLine"
)

// External entity kinds, named after the legacy source's tables.
const (
	KindBody     = "Body"
	KindCurr     = "Curr"
	KindUnit     = "Unit"
	KindParamSet = "ParamSet"
	KindStatus   = "Status"
	KindFirm     = "Firm"
	KindPerson   = "Person"
	KindUser     = "User"
	KindGroup    = "Group"
	KindDetail   = "Detail"
	KindComplect = "Complect"
	KindOrder    = "Order"
	KindSpc      = "Spc"
	KindSpcItem  = "SpcItem"
)

// ExternalLink is the durable join record between a local entity and its
// external counterpart. The (local_entity_type, external_system,
// external_entity_kind, external_id) tuple is unique: one external record
// maps to exactly one local entity. A link is created on first sighting,
// touched on every re-sync and never repointed to a different local entity.
type ExternalLink struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	LocalEntityType    string    `gorm:"column:local_entity_type;uniqueIndex:idx_external_links_identity"`
	LocalEntityID      string    `gorm:"column:local_entity_id;index"`
	ExternalSystem     string    `gorm:"column:external_system;uniqueIndex:idx_external_links_identity"`
	ExternalEntityKind string    `gorm:"column:external_entity_kind;uniqueIndex:idx_external_links_identity"`
	ExternalID         int64     `gorm:"column:external_id;uniqueIndex:idx_external_links_identity"`
	SourceType         *string   `gorm:"column:source_type"`
	SyncedAt           time.Time `gorm:"column:synced_at"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (ExternalLink) TableName() string {
	return "external_links"
}
