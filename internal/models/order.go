package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CustomerOrder is a sales order header. Line-level order data stays in the
// legacy source; only the header participates in reconciliation.
type CustomerOrder struct {
	ID             string     `gorm:"column:id;primaryKey"`
	Number         string     `gorm:"column:number;uniqueIndex"`
	CounterpartyID *string    `gorm:"column:counterparty_id;index"`
	OrderedAt      *time.Time `gorm:"column:ordered_at"`
	Comment        *string    `gorm:"column:comment"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (CustomerOrder) TableName() string { return "customer_orders" }

func NewCustomerOrder(number string, counterpartyID *string, orderedAt *time.Time, comment *string) (*CustomerOrder, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrEmptyNumber
	}
	return &CustomerOrder{
		ID:             uuid.New().String(),
		Number:         number,
		CounterpartyID: counterpartyID,
		OrderedAt:      orderedAt,
		Comment:        comment,
	}, nil
}

func (o *CustomerOrder) Update(counterpartyID *string, orderedAt *time.Time, comment *string) {
	o.CounterpartyID = counterpartyID
	o.OrderedAt = orderedAt
	o.Comment = comment
}
