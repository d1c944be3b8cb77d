package controllers

import (
	"fmt"
	"net/http"
	"time"

	"invoicing-backend/models"
	"invoicing-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardController struct {
	db *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{db: db}
}

type OverdueInvoice struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ClientName    string          `json:"clientName"`
	Amount        decimal.Decimal `json:"amount"`
	DaysOverdue   int             `json:"daysOverdue"`
}

type RecentInvoice struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ClientName    string          `json:"clientName"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	IssuedLabel   string          `json:"issued"` // e.g. "Today", "3 days ago"
}

// GetOverview returns the headline numbers for the logged-in user
func (dc *DashboardController) GetOverview(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	// Total Clients
	var totalClients int64
	dc.db.Model(&models.Client{}).Where("user_id = ?", uid).Count(&totalClients)

	// Total Invoices
	var totalInvoices int64
	dc.db.Model(&models.Invoice{}).Where("user_id = ?", uid).Count(&totalInvoices)

	// This Month's Revenue (paid invoices issued this month)
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue decimal.Decimal
	dc.db.Model(&models.Invoice{}).
		Where("user_id = ? AND status = ? AND issue_date >= ?", uid, models.StatusPaid, firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&monthlyRevenue)

	// Outstanding amount (sent, not yet paid)
	var outstanding decimal.Decimal
	dc.db.Model(&models.Invoice{}).
		Where("user_id = ? AND status = ?", uid, models.StatusSent).
		Select("COALESCE(SUM(amount), 0)").Scan(&outstanding)

	// Overdue invoices (sent, past due date)
	today := utils.BeginningOfDay(now)
	type overdueRow struct {
		ID            uuid.UUID
		InvoiceNumber string
		ClientName    string
		Amount        decimal.Decimal
		DueDate       time.Time
	}
	var rows []overdueRow
	dc.db.Raw(`
        SELECT i.id, i.invoice_number, c.name AS client_name, i.amount, i.due_date
        FROM invoices i
        JOIN clients c ON c.id = i.client_id
        WHERE i.user_id = ? AND i.status = ? AND i.due_date < ?
        ORDER BY i.due_date
    `, uid, models.StatusSent, today).Scan(&rows)

	overdue := make([]OverdueInvoice, 0, len(rows))
	for _, r := range rows {
		overdue = append(overdue, OverdueInvoice{
			ID:            r.ID,
			InvoiceNumber: r.InvoiceNumber,
			ClientName:    r.ClientName,
			Amount:        r.Amount,
			DaysOverdue:   utils.DaysBetween(r.DueDate, now),
		})
	}

	// Three most recent invoices
	type recentRow struct {
		ID            uuid.UUID
		InvoiceNumber string
		ClientName    string
		Amount        decimal.Decimal
		Status        string
		CreatedAt     time.Time
	}
	var recentRows []recentRow
	dc.db.Raw(`
        SELECT i.id, i.invoice_number, c.name AS client_name, i.amount, i.status, i.created_at
        FROM invoices i
        JOIN clients c ON c.id = i.client_id
        WHERE i.user_id = ?
        ORDER BY i.created_at DESC
        LIMIT 3
    `, uid).Scan(&recentRows)

	recent := make([]RecentInvoice, 0, len(recentRows))
	for _, r := range recentRows {
		daysAgo := utils.DaysBetween(r.CreatedAt, now)
		var label string
		switch daysAgo {
		case 0:
			label = "Today"
		case 1:
			label = "Yesterday"
		default:
			label = fmt.Sprintf("%d days ago", daysAgo)
		}
		recent = append(recent, RecentInvoice{
			ID:            r.ID,
			InvoiceNumber: r.InvoiceNumber,
			ClientName:    r.ClientName,
			Amount:        r.Amount,
			Status:        r.Status,
			IssuedLabel:   label,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalClients":      totalClients,
		"totalInvoices":     totalInvoices,
		"monthlyRevenue":    monthlyRevenue,
		"outstandingAmount": outstanding,
		"overdueInvoices":   overdue,
		"recentInvoices":    recent,
	})
}
