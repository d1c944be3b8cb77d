package repository

import (
	"context"
	"errors"
	"time"

	"invoicing-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceRepository persists the invoice aggregate: an invoice together with
// its ordered line items. The invoice and its items are created and deleted
// together inside one transaction; items never exist independently.
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// InvoiceFields are the invoice-level mutable fields; Update replaces all
// of them and never touches items.
type InvoiceFields struct {
	ClientID      uuid.UUID
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time
	Amount        decimal.Decimal
	Status        models.InvoiceStatus
	Notes         string
}

// ItemFields describe one line item supplied on create. The amount is taken
// as supplied, not derived from quantity and rate.
type ItemFields struct {
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// Create inserts the invoice and its items in input order within one
// transaction. Status defaults to draft when not supplied. The stored
// invoice row is returned; items are not echoed back.
func (r *InvoiceRepository) Create(ctx context.Context, uid uuid.UUID, fields InvoiceFields, items []ItemFields) (*models.Invoice, error) {
	status := fields.Status
	if status == "" {
		status = models.StatusDraft
	}

	invoice := models.Invoice{
		UserID:        uid,
		ClientID:      fields.ClientID,
		InvoiceNumber: fields.InvoiceNumber,
		IssueDate:     fields.IssueDate,
		DueDate:       fields.DueDate,
		Amount:        fields.Amount,
		Status:        status,
		Notes:         fields.Notes,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		for i, item := range items {
			row := models.InvoiceItem{
				InvoiceID:   invoice.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				Rate:        item.Rate,
				Amount:      item.Amount,
				Position:    i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

// GetWithItems fetches the invoice under ownership filtering, then its items
// in insertion order. The invoice lookup runs first and aborts on a miss;
// the item fetch trusts that check and filters by invoice id only.
func (r *InvoiceRepository) GetWithItems(ctx context.Context, uid, id uuid.UUID) (*models.Invoice, []models.InvoiceItem, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", uid, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var items []models.InvoiceItem
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoice.ID).
		Order("position").
		Find(&items).Error; err != nil {
		return nil, nil, err
	}

	return &invoice, items, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, uid, id uuid.UUID, fields InvoiceFields) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", uid, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	invoice.ClientID = fields.ClientID
	invoice.InvoiceNumber = fields.InvoiceNumber
	invoice.IssueDate = fields.IssueDate
	invoice.DueDate = fields.DueDate
	invoice.Amount = fields.Amount
	invoice.Status = fields.Status
	invoice.Notes = fields.Notes

	if err := r.db.WithContext(ctx).Save(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Delete removes the items and then the invoice in one transaction. A zero
// row count on the invoice delete means the id+owner filter missed; the
// transaction rolls back so the item deletion never takes effect alone.
func (r *InvoiceRepository) Delete(ctx context.Context, uid, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("user_id = ? AND id = ?", uid, id).Delete(&models.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListForUser returns the user's invoices, most recent first.
func (r *InvoiceRepository) ListForUser(ctx context.Context, uid uuid.UUID) ([]models.Invoice, error) {
	invoices := make([]models.Invoice, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
