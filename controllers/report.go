// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"invoicing-backend/models"
	"invoicing-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportController handles revenue reporting
type ReportController struct {
	db *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{db: db}
}

type ClientSummary struct {
	Name     string          `json:"name"`
	Invoices int             `json:"invoices"`
	Billed   decimal.Decimal `json:"billed"`
}

type QuickStatistics struct {
	TotalClients    int64           `json:"totalClients"`
	TotalInvoices   int64           `json:"totalInvoices"`
	DraftInvoices   int64           `json:"draftInvoices"`
	UnpaidInvoices  int64           `json:"unpaidInvoices"`
	AvgInvoiceValue decimal.Decimal `json:"avgInvoiceValue"`
}

// GetReportAnalytics returns revenue for the current month, quarter and year
// with growth against the preceding period, plus top clients and quick stats.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	quarterMonth := time.Month(((int(now.Month())-1)/3)*3 + 1)
	quarterStart := time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
	prevQuarterStart := quarterStart.AddDate(0, -3, 0)

	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	prevYearStart := yearStart.AddDate(-1, 0, 0)

	monthRevenue := rc.paidRevenueBetween(uid, monthStart, now)
	prevMonthRevenue := rc.paidRevenueBetween(uid, prevMonthStart, monthStart)
	quarterRevenue := rc.paidRevenueBetween(uid, quarterStart, now)
	prevQuarterRevenue := rc.paidRevenueBetween(uid, prevQuarterStart, quarterStart)
	yearRevenue := rc.paidRevenueBetween(uid, yearStart, now)
	prevYearRevenue := rc.paidRevenueBetween(uid, prevYearStart, yearStart)

	// Top clients by billed amount
	type topClientRow struct {
		Name     string
		Invoices int
		Billed   decimal.Decimal
	}
	var topRows []topClientRow
	rc.db.Raw(`
        SELECT c.name, COUNT(i.id) AS invoices, COALESCE(SUM(i.amount), 0) AS billed
        FROM invoices i
        JOIN clients c ON c.id = i.client_id
        WHERE i.user_id = ?
        GROUP BY c.id, c.name
        ORDER BY billed DESC
        LIMIT 5
    `, uid).Scan(&topRows)

	topClients := make([]ClientSummary, 0, len(topRows))
	for _, r := range topRows {
		topClients = append(topClients, ClientSummary{Name: r.Name, Invoices: r.Invoices, Billed: r.Billed})
	}

	var stats QuickStatistics
	rc.db.Model(&models.Client{}).Where("user_id = ?", uid).Count(&stats.TotalClients)
	rc.db.Model(&models.Invoice{}).Where("user_id = ?", uid).Count(&stats.TotalInvoices)
	rc.db.Model(&models.Invoice{}).Where("user_id = ? AND status = ?", uid, models.StatusDraft).Count(&stats.DraftInvoices)
	rc.db.Model(&models.Invoice{}).Where("user_id = ? AND status = ?", uid, models.StatusSent).Count(&stats.UnpaidInvoices)
	if stats.TotalInvoices > 0 {
		var total decimal.Decimal
		rc.db.Model(&models.Invoice{}).
			Where("user_id = ?", uid).
			Select("COALESCE(SUM(amount), 0)").Scan(&total)
		stats.AvgInvoiceValue = total.Div(decimal.NewFromInt(stats.TotalInvoices)).Round(2)
	}

	c.JSON(http.StatusOK, gin.H{
		"currentMonthRevenue":   monthRevenue,
		"monthGrowth":           growthPercent(monthRevenue, prevMonthRevenue),
		"currentQuarterRevenue": quarterRevenue,
		"quarterGrowth":         growthPercent(quarterRevenue, prevQuarterRevenue),
		"currentYearRevenue":    yearRevenue,
		"yearGrowth":            growthPercent(yearRevenue, prevYearRevenue),
		"topClients":            topClients,
		"quickStats":            stats,
	})
}

func (rc *ReportController) paidRevenueBetween(uid uuid.UUID, from, to time.Time) decimal.Decimal {
	var revenue decimal.Decimal
	rc.db.Model(&models.Invoice{}).
		Where("user_id = ? AND status = ? AND issue_date >= ? AND issue_date < ?", uid, models.StatusPaid, from, to).
		Select("COALESCE(SUM(amount), 0)").Scan(&revenue)
	return revenue
}

func growthPercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
}
