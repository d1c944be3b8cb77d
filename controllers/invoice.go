package controllers

import (
	"errors"
	"net/http"
	"time"

	"invoicing-backend/models"
	"invoicing-backend/repository"
	"invoicing-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceController struct {
	invoices *repository.InvoiceRepository
	clients  *repository.ClientRepository
}

func NewInvoiceController(invoices *repository.InvoiceRepository, clients *repository.ClientRepository) *InvoiceController {
	return &InvoiceController{invoices: invoices, clients: clients}
}

// InvoiceItemInput defines the structure for an invoice item
type InvoiceItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateInvoiceInput defines the expected JSON structure for creating an invoice
type CreateInvoiceInput struct {
	ClientID      uuid.UUID          `json:"clientId" binding:"required"`
	InvoiceNumber string             `json:"invoiceNumber" binding:"required"`
	IssueDate     time.Time          `json:"issueDate" binding:"required"`
	DueDate       time.Time          `json:"dueDate" binding:"required"`
	Amount        decimal.Decimal    `json:"amount"`
	Status        string             `json:"status" binding:"omitempty,oneof=draft sent paid"`
	Notes         string             `json:"notes"`
	Items         []InvoiceItemInput `json:"items"`
}

// UpdateInvoiceInput defines the expected JSON structure for updating an
// invoice. All invoice-level fields are replaced; items have no edit path.
type UpdateInvoiceInput struct {
	ClientID      uuid.UUID       `json:"clientId" binding:"required"`
	InvoiceNumber string          `json:"invoiceNumber" binding:"required"`
	IssueDate     time.Time       `json:"issueDate" binding:"required"`
	DueDate       time.Time       `json:"dueDate" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status" binding:"required,oneof=draft sent paid"`
	Notes         string          `json:"notes"`
}

func (ic *InvoiceController) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// The referenced client must exist under the same owner
	if _, err := ic.clients.Get(c.Request.Context(), uid, input.ClientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	items := make([]repository.ItemFields, len(input.Items))
	for i, item := range input.Items {
		items[i] = repository.ItemFields{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
		}
	}

	invoice, err := ic.invoices.Create(c.Request.Context(), uid, repository.InvoiceFields{
		ClientID:      input.ClientID,
		InvoiceNumber: input.InvoiceNumber,
		IssueDate:     input.IssueDate,
		DueDate:       input.DueDate,
		Amount:        input.Amount,
		Status:        models.InvoiceStatus(input.Status),
		Notes:         input.Notes,
	}, items)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// List retrieves all invoices for the user, most recent first
func (ic *InvoiceController) List(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	invoices, err := ic.invoices.ListForUser(c.Request.Context(), uid)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// Get retrieves a specific invoice together with its items
func (ic *InvoiceController) Get(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	invoice, items, err := ic.invoices.GetWithItems(c.Request.Context(), uid, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if items == nil {
		items = []models.InvoiceItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice": invoice,
		"items":   items,
	})
}

func (ic *InvoiceController) Update(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := ic.invoices.Update(c.Request.Context(), uid, id, repository.InvoiceFields{
		ClientID:      input.ClientID,
		InvoiceNumber: input.InvoiceNumber,
		IssueDate:     input.IssueDate,
		DueDate:       input.DueDate,
		Amount:        input.Amount,
		Status:        models.InvoiceStatus(input.Status),
		Notes:         input.Notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// Delete removes an invoice together with its items
func (ic *InvoiceController) Delete(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	if err := ic.invoices.Delete(c.Request.Context(), uid, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
