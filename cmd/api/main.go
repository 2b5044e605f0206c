package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/medicore/hms-api/internal/application/service"
	"github.com/medicore/hms-api/internal/config"
	"github.com/medicore/hms-api/internal/infrastructure/cache"
	"github.com/medicore/hms-api/internal/infrastructure/database"
	"github.com/medicore/hms-api/internal/infrastructure/repository"
	"github.com/medicore/hms-api/internal/presentation/http/handler"
	"github.com/medicore/hms-api/internal/presentation/http/routes"
	"github.com/medicore/hms-api/pkg/email"
	"github.com/medicore/hms-api/pkg/oauth"
	"github.com/medicore/hms-api/pkg/printer"
	"github.com/medicore/hms-api/pkg/storage"
	"github.com/medicore/hms-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Connect to Redis for the dashboard cache. The API degrades gracefully
	// without it.
	var dashboardCache *cache.Cache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Redis unavailable, dashboard caching disabled: %v", err)
	} else {
		dashboardCache = cache.NewCache(redisClient, cfg.Redis.CacheTTL)
	}

	// Initialize report file storage
	fileStorage, err := storage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.UploadMaxSize)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	dispenseRepo := repository.NewDispenseRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, userRepo, dashboardCache)
	authService := service.NewAuthService(userRepo, patientRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	userService := service.NewUserService(userRepo)
	patientService := service.NewPatientService(patientRepo, visitRepo)
	staffService := service.NewStaffService(staffRepo, userRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, patientRepo, staffRepo, emailService, notificationService)
	visitService := service.NewVisitService(visitRepo, patientRepo, staffRepo, appointmentRepo)
	billingService := service.NewBillingService(invoiceRepo, paymentRepo, patientRepo, visitRepo, settingsRepo, emailService, dashboardCache)
	inventoryService := service.NewInventoryService(medicineRepo, dispenseRepo, patientRepo, settingsRepo, notificationService)
	reportService := service.NewReportService(reportRepo, patientRepo, visitRepo, fileStorage, notificationService)
	dashboardService := service.NewDashboardService(patientRepo, appointmentRepo, visitRepo, invoiceRepo, medicineRepo, settingsRepo, dashboardCache)
	exportService := service.NewExportService(patientRepo, invoiceRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, invoiceRepo, patientRepo, userRepo, settingsRepo, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Patient:      handler.NewPatientHandler(patientService),
		Staff:        handler.NewStaffHandler(staffService),
		Appointment:  handler.NewAppointmentHandler(appointmentService),
		Visit:        handler.NewVisitHandler(visitService),
		Billing:      handler.NewBillingHandler(billingService, printerService),
		Inventory:    handler.NewInventoryHandler(inventoryService),
		Report:       handler.NewReportHandler(reportService),
		Notification: handler.NewNotificationHandler(notificationService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Export:       handler.NewExportHandler(exportService),
		Settings:     handler.NewSettingsHandler(settingsService),
		Printer:      handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		PatientRepo:     patientRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
