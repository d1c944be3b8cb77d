package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus enumerates the invoice lifecycle states. Any state may be
// set from any other state; only the value set itself is validated.
type InvoiceStatus string

const (
	StatusDraft InvoiceStatus = "draft"
	StatusSent  InvoiceStatus = "sent"
	StatusPaid  InvoiceStatus = "paid"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid:
		return true
	}
	return false
}

type Invoice struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	// ClientID is a lookup key, not an ownership link. The referenced
	// client must belong to the same user at creation time.
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`

	InvoiceNumber string          `gorm:"not null" json:"invoiceNumber"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status        InvoiceStatus   `gorm:"type:varchar(10);default:'draft'" json:"status"`
	Notes         string          `json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"invoiceId"`

	Description string          `gorm:"not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rate"`
	// Amount is supplied by the caller; it is not derived from
	// quantity and rate.
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`

	// Position preserves the order items were supplied in on create.
	Position int `gorm:"not null" json:"position"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return
}
