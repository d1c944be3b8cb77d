package main

import (
	"fmt"
	"log"

	"invoicing-backend/config"
	"invoicing-backend/models"
	"invoicing-backend/routes"
	"invoicing-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	logger, err := config.NewLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}

	db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.ReminderLog{},
	)

	if cfg.RemindersConfigured() {
		reminders := services.NewReminderService(db, cfg, logger)
		reminders.StartScheduler()
	} else {
		logger.Info("Twilio not configured, payment reminders disabled")
	}

	r := routes.SetupRouter(db, cfg, logger)
	printRoutes(r)

	logger.Info("server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
