package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything read from the environment. It is loaded once in
// main and passed to the components that need it; nothing reads the
// environment after startup.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTExpiry time.Duration

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string
}

func Load() Config {
	expiryHours := 24
	if env := os.Getenv("JWT_EXPIRY_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil {
			expiryHours = h
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:        port,
		DatabaseURL: os.Getenv("DB_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: time.Duration(expiryHours) * time.Hour,

		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}
}

// RemindersConfigured reports whether Twilio credentials are present; the
// reminder scheduler only starts when they are.
func (c Config) RemindersConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}
