package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItemGroup is one node of the (possibly cyclic in the legacy source) group
// hierarchy. Abbreviation is only set on root groups and drives the
// nomenclature prefix of items under that root.
type ItemGroup struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	ParentID     *string   `gorm:"column:parent_id;index"`
	Abbreviation *string   `gorm:"column:abbreviation"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (ItemGroup) TableName() string { return "item_groups" }

func NewItemGroup(name string, parentID, abbreviation *string) (*ItemGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &ItemGroup{
		ID:           uuid.New().String(),
		Name:         name,
		ParentID:     parentID,
		Abbreviation: abbreviation,
	}, nil
}

func (g *ItemGroup) Update(name string, parentID, abbreviation *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	g.Name = name
	g.ParentID = parentID
	g.Abbreviation = abbreviation
	return nil
}

// Item is a component: a part, assembly, standard part or material. The
// nomenclature number is assigned once; a valid number is never overwritten
// even when upstream data changes.
type Item struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Number    string    `gorm:"column:number;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	Kind      ItemKind  `gorm:"column:kind;index"`
	GroupID   *string   `gorm:"column:group_id;index"`
	UnitID    *string   `gorm:"column:unit_id"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (Item) TableName() string { return "items" }

func NewItem(number, name string, kind ItemKind, groupID, unitID *string) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !ValidNomenclatureNumber(number) {
		return nil, ErrBadNumber
	}
	return &Item{
		ID:       uuid.New().String(),
		Number:   number,
		Name:     name,
		Kind:     kind,
		GroupID:  groupID,
		UnitID:   unitID,
		IsActive: true,
	}, nil
}

// Update applies upstream attributes, leaving the number untouched.
func (i *Item) Update(name string, kind ItemKind, groupID, unitID *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	i.Name = name
	i.Kind = kind
	i.GroupID = groupID
	i.UnitID = unitID
	return nil
}

// SetNumber assigns a nomenclature number, but only when the item does not
// already carry a valid one.
func (i *Item) SetNumber(number string) error {
	if ValidNomenclatureNumber(i.Number) {
		return nil
	}
	if !ValidNomenclatureNumber(number) {
		return ErrBadNumber
	}
	i.Number = number
	return nil
}

// Product is a sellable complect assembled from items.
type Product struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Number    string    `gorm:"column:number;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	GroupID   *string   `gorm:"column:group_id;index"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string { return "products" }

func NewProduct(number, name string, groupID *string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !ValidNomenclatureNumber(number) {
		return nil, ErrBadNumber
	}
	return &Product{
		ID:       uuid.New().String(),
		Number:   number,
		Name:     name,
		GroupID:  groupID,
		IsActive: true,
	}, nil
}

func (p *Product) Update(name string, groupID *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	p.GroupID = groupID
	return nil
}
