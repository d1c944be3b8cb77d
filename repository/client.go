package repository

import (
	"context"
	"errors"

	"invoicing-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientRepository provides client CRUD scoped to an owning user. Every
// query filters by user_id; ownership is enforced by filtering, not by a
// separate authorization check.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// ClientFields are the mutable fields of a client; Update replaces all of
// them.
type ClientFields struct {
	Name        string
	Email       string
	Phone       string
	CompanyName string
	Address     string
}

func (r *ClientRepository) ListForUser(ctx context.Context, uid uuid.UUID) ([]models.Client, error) {
	clients := make([]models.Client, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", uid).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) Create(ctx context.Context, uid uuid.UUID, fields ClientFields) (*models.Client, error) {
	client := models.Client{
		UserID:      uid,
		Name:        fields.Name,
		Email:       fields.Email,
		Phone:       fields.Phone,
		CompanyName: fields.CompanyName,
		Address:     fields.Address,
	}
	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Get(ctx context.Context, uid, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", uid, id).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Update(ctx context.Context, uid, id uuid.UUID, fields ClientFields) (*models.Client, error) {
	client, err := r.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	client.Name = fields.Name
	client.Email = fields.Email
	client.Phone = fields.Phone
	client.CompanyName = fields.CompanyName
	client.Address = fields.Address

	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client. Deletion is refused while invoices of the same
// owner still reference the client.
func (r *ClientRepository) Delete(ctx context.Context, uid, id uuid.UUID) error {
	var referencing int64
	if err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("user_id = ? AND client_id = ?", uid, id).
		Count(&referencing).Error; err != nil {
		return err
	}
	if referencing > 0 {
		return ErrClientHasInvoices
	}

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", uid, id).
		Delete(&models.Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
