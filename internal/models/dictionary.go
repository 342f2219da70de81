package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors shared by the domain aggregates. Sync handlers go
// through the constructors and mutators below and never bypass them.
var (
	ErrEmptyName   = errors.New("name must not be empty")
	ErrEmptyCode   = errors.New("code must not be empty")
	ErrBadNumber   = errors.New("invalid nomenclature number")
	ErrEmptyNumber = errors.New("number must not be empty")
)

// BodyType is a master-data dictionary entry (frame/body classification).
type BodyType struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (BodyType) TableName() string { return "body_types" }

func NewBodyType(name string) (*BodyType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &BodyType{ID: uuid.New().String(), Name: name}, nil
}

func (b *BodyType) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	b.Name = name
	return nil
}

// Currency is a master-data dictionary entry keyed by its ISO-style code.
type Currency struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Code      string    `gorm:"column:code;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (Currency) TableName() string { return "currencies" }

func NewCurrency(code, name string) (*Currency, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Currency{ID: uuid.New().String(), Code: code, Name: name}, nil
}

func (c *Currency) Update(code, name string) error {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return ErrEmptyCode
	}
	if name == "" {
		return ErrEmptyName
	}
	c.Code = code
	c.Name = name
	return nil
}

// Unit is a unit of measure. Units referenced by items are never hard
// deleted; they are deactivated instead.
type Unit struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Code      string    `gorm:"column:code;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (Unit) TableName() string { return "units" }

func NewUnit(code, name string) (*Unit, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Unit{ID: uuid.New().String(), Code: code, Name: name, IsActive: true}, nil
}

func (u *Unit) Update(code, name string) error {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return ErrEmptyCode
	}
	if name == "" {
		return ErrEmptyName
	}
	u.Code = code
	u.Name = name
	return nil
}

// ParameterSet is a named set of engineering parameters attached to items.
type ParameterSet struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (ParameterSet) TableName() string { return "parameter_sets" }

func NewParameterSet(name string) (*ParameterSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &ParameterSet{ID: uuid.New().String(), Name: name}, nil
}

func (p *ParameterSet) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}
