// services/reminder_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"invoicing-backend/config"
	"invoicing-backend/models"
	"invoicing-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// reminderCooldown is how long a reminded invoice is left alone before the
// sweep may message its client again.
const reminderCooldown = 7 * 24 * time.Hour

// ReminderService sends payment reminders for overdue invoices: sent
// invoices whose due date has passed, for users that opted in.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	cfg    config.Config
	logger *zap.Logger
}

func NewReminderService(db *gorm.DB, cfg config.Config, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		cfg:    cfg,
		logger: logger,
	}
}

// StartScheduler runs the overdue sweep every day at 9 AM.
func (s *ReminderService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		s.SendDailyReminders()
	})

	c.Start()
	s.logger.Info("payment reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	s.logger.Info("starting daily payment reminder sweep")

	var users []models.User
	if err := s.db.Find(&users, "payment_reminders_enabled = ?", true).Error; err != nil {
		s.logger.Error("failed to fetch users", zap.Error(err))
		return
	}

	for _, user := range users {
		s.ProcessUserReminders(user.ID)
	}

	s.logger.Info("daily payment reminder sweep completed")
}

type overdueInvoice struct {
	InvoiceID     uuid.UUID
	InvoiceNumber string
	Amount        decimal.Decimal
	DueDate       time.Time
	ClientID      uuid.UUID
	ClientName    string
	ClientPhone   string
}

func (s *ReminderService) ProcessUserReminders(uid uuid.UUID) {
	overdue, err := s.getOverdueInvoices(uid)
	if err != nil {
		s.logger.Error("failed to get overdue invoices",
			zap.String("userId", uid.String()), zap.Error(err))
		return
	}

	for _, inv := range overdue {
		if inv.ClientPhone == "" {
			continue
		}
		s.sendReminder(uid, inv)
	}
}

func (s *ReminderService) getOverdueInvoices(uid uuid.UUID) ([]overdueInvoice, error) {
	today := utils.BeginningOfDay(time.Now())
	cutoff := time.Now().Add(-reminderCooldown)

	var overdue []overdueInvoice
	err := s.db.Raw(`
        SELECT i.id AS invoice_id, i.invoice_number, i.amount, i.due_date,
               c.id AS client_id, c.name AS client_name, c.phone AS client_phone
        FROM invoices i
        JOIN clients c ON c.id = i.client_id
        WHERE i.user_id = ? AND i.status = ? AND i.due_date < ?
        AND NOT EXISTS (
            SELECT 1 FROM reminder_logs r
            WHERE r.invoice_id = i.id AND r.status = 'sent' AND r.sent_at > ?
        )
        ORDER BY i.due_date
    `, uid, models.StatusSent, today, cutoff).Scan(&overdue).Error
	return overdue, err
}

func (s *ReminderService) sendReminder(uid uuid.UUID, inv overdueInvoice) {
	daysOverdue := utils.DaysBetween(inv.DueDate, time.Now())
	message := fmt.Sprintf(
		"Hi %s, a friendly reminder that invoice %s for %s is %d day(s) overdue. Thank you!",
		inv.ClientName, inv.InvoiceNumber, inv.Amount.StringFixed(2), daysOverdue,
	)

	// WhatsApp for E.164 numbers, SMS otherwise
	channel := "sms"
	to := inv.ClientPhone
	if strings.HasPrefix(inv.ClientPhone, "+") {
		to = "whatsapp:" + inv.ClientPhone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + s.cfg.TwilioWhatsAppNumber)
	} else {
		params.SetFrom(s.cfg.TwilioPhoneNumber)
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		s.logger.Warn("failed to send payment reminder",
			zap.String("invoiceNumber", inv.InvoiceNumber), zap.Error(err))
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		s.logger.Info("payment reminder sent",
			zap.String("invoiceNumber", inv.InvoiceNumber), zap.String("sid", *resp.Sid))
	}

	reminderLog := models.ReminderLog{
		UserID:       uid,
		InvoiceID:    inv.InvoiceID,
		ClientID:     inv.ClientID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		s.logger.Error("failed to log reminder",
			zap.String("invoiceId", inv.InvoiceID.String()), zap.Error(err))
	}
}
