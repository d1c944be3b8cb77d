package routes

import (
	"invoicing-backend/config"
	"invoicing-backend/controllers"
	"invoicing-backend/repository"
	"invoicing-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg config.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger(logger))

	clientRepo := repository.NewClientRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	authController := controllers.NewAuthController(db, cfg)
	clientController := controllers.NewClientController(clientRepo)
	invoiceController := controllers.NewInvoiceController(invoiceRepo, clientRepo)
	dashboardController := controllers.NewDashboardController(db)
	reportController := controllers.NewReportController(db)
	profileController := controllers.NewProfileController(db)
	reminderController := controllers.NewReminderController(db)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware(cfg.JWTSecret))
		auth.GET("/me", authController.Me)

		profile := auth.Group("/profile")
		{
			profile.GET("", profileController.GetProfile)
			profile.PUT("", profileController.UpdateProfile)
			profile.PUT("/notifications", profileController.UpdateNotifications)
		}
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(cfg.JWTSecret))
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", clientController.Create)
			clients.GET("", clientController.List)
			clients.GET("/:id", clientController.Get)
			clients.PUT("/:id", clientController.Update)
			clients.DELETE("/:id", clientController.Delete)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", invoiceController.Create)
			invoices.GET("", invoiceController.List)
			invoices.GET("/:id", invoiceController.Get)
			invoices.PUT("/:id", invoiceController.Update)
			invoices.DELETE("/:id", invoiceController.Delete)
		}

		// Dashboard routes
		api.GET("/dashboard", dashboardController.GetOverview)

		// Reports routes
		api.GET("/reports", reportController.GetReportAnalytics)

		// Reminder history
		api.GET("/reminders", reminderController.ListLogs)
	}

	return r
}
