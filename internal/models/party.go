package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Counterparty is a customer or provider firm. Counterparties referenced by
// orders are deactivated instead of deleted under overwrite reconciliation.
type Counterparty struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name;index"`
	TIN        *string   `gorm:"column:tin"`
	IsProvider bool      `gorm:"column:is_provider"`
	IsActive   bool      `gorm:"column:is_active"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (Counterparty) TableName() string { return "counterparties" }

func NewCounterparty(name string, tin *string, isProvider bool) (*Counterparty, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Counterparty{
		ID:         uuid.New().String(),
		Name:       name,
		TIN:        tin,
		IsProvider: isProvider,
		IsActive:   true,
	}, nil
}

func (c *Counterparty) Update(name string, tin *string, isProvider bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	c.TIN = tin
	c.IsProvider = isProvider
	return nil
}

// Person is an employee record.
type Person struct {
	ID         string    `gorm:"column:id;primaryKey"`
	LastName   string    `gorm:"column:last_name"`
	FirstName  string    `gorm:"column:first_name"`
	MiddleName *string   `gorm:"column:middle_name"`
	Position   *string   `gorm:"column:position"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (Person) TableName() string { return "persons" }

func NewPerson(lastName, firstName string, middleName, position *string) (*Person, error) {
	lastName = strings.TrimSpace(lastName)
	firstName = strings.TrimSpace(firstName)
	if lastName == "" {
		return nil, ErrEmptyName
	}
	return &Person{
		ID:         uuid.New().String(),
		LastName:   lastName,
		FirstName:  firstName,
		MiddleName: middleName,
		Position:   position,
	}, nil
}

func (p *Person) Update(lastName, firstName string, middleName, position *string) error {
	lastName = strings.TrimSpace(lastName)
	if lastName == "" {
		return ErrEmptyName
	}
	p.LastName = lastName
	p.FirstName = strings.TrimSpace(firstName)
	p.MiddleName = middleName
	p.Position = position
	return nil
}

// FullName renders "Last First Middle" for natural-key matching.
func (p *Person) FullName() string {
	parts := []string{p.LastName, p.FirstName}
	if p.MiddleName != nil && *p.MiddleName != "" {
		parts = append(parts, *p.MiddleName)
	}
	return strings.Join(parts, " ")
}
