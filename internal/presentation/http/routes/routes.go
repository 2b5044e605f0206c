package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medicore/hms-api/internal/config"
	"github.com/medicore/hms-api/internal/domain/enum"
	domainRepo "github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/internal/presentation/http/handler"
	"github.com/medicore/hms-api/internal/presentation/http/middleware"
	"github.com/medicore/hms-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Patient      *handler.PatientHandler
	Staff        *handler.StaffHandler
	Appointment  *handler.AppointmentHandler
	Visit        *handler.VisitHandler
	Billing      *handler.BillingHandler
	Inventory    *handler.InventoryHandler
	Report       *handler.ReportHandler
	Notification *handler.NotificationHandler
	Dashboard    *handler.DashboardHandler
	Export       *handler.ExportHandler
	Settings     *handler.SettingsHandler
	Printer      *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	PatientRepo     domainRepo.PatientRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		// Patient accounts are scoped to their own records
		protected.Use(middleware.PatientScopeMiddleware(deps.PatientRepo))

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Notifications
	registerNotificationRoutes(protected, h)

	// Patients
	registerPatientRoutes(protected, h)

	// Staff
	registerStaffRoutes(protected, h)

	// Appointments
	registerAppointmentRoutes(protected, h)

	// Visits
	registerVisitRoutes(protected, h)

	// Billing
	registerBillingRoutes(protected, h, deps)

	// Inventory
	registerInventoryRoutes(protected, h)

	// Medical reports
	registerReportRoutes(protected, h)

	// Dashboard
	dashboard := protected.Group("/dashboard", staffOnly())
	{
		dashboard.GET("", h.Dashboard.GetSummary)
		dashboard.POST("/refresh", h.Dashboard.Refresh)
	}

	// Excel exports
	exports := protected.Group("/exports", middleware.RequireRoles(enum.RoleAdmin, enum.RoleReceptionist))
	{
		exports.GET("/patients", h.Export.ExportPatients)
		exports.GET("/invoices", h.Export.ExportInvoices)
	}

	// Settings
	protected.GET("/settings", staffOnly(), h.Settings.GetSettings)
	protected.PUT("/settings", middleware.RequireRoles(enum.RoleAdmin), h.Settings.UpdateSettings)

	// Users (Admin)
	users := protected.Group("/users", middleware.RequireRoles(enum.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.PUT("/:id/password", h.User.ResetPassword)
		users.DELETE("/:id", h.User.Delete)
	}

	// Printer
	printer := protected.Group("/printer", middleware.RequireRoles(enum.RoleAdmin, enum.RoleReceptionist))
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}

// staffOnly allows every role except patient accounts
func staffOnly() gin.HandlerFunc {
	return middleware.RequireRoles(
		enum.RoleAdmin,
		enum.RoleDoctor,
		enum.RoleNurse,
		enum.RoleReceptionist,
		enum.RoleLabTechnician,
	)
}

func registerNotificationRoutes(protected *gin.RouterGroup, h *Handlers) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.PUT("/read-all", h.Notification.MarkAllRead)
		notifications.PUT("/:id/read", h.Notification.MarkRead)
		notifications.DELETE("/:id", h.Notification.Delete)
	}
}

func registerPatientRoutes(protected *gin.RouterGroup, h *Handlers) {
	// The patient's own record, available to patient accounts
	protected.GET("/patients/me", h.Patient.GetMe)

	patients := protected.Group("/patients", staffOnly())
	{
		patients.GET("", h.Patient.List)
		patients.GET("/:id", h.Patient.Get)
		patients.GET("/:id/dispenses", h.Inventory.ListPatientDispenses)

		frontDesk := middleware.RequireRoles(enum.RoleAdmin, enum.RoleReceptionist)
		patients.POST("", frontDesk, h.Patient.Create)
		patients.PUT("/:id", frontDesk, h.Patient.Update)
		patients.DELETE("/:id", middleware.RequireRoles(enum.RoleAdmin), h.Patient.Delete)
	}
}

func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Doctor directory is open to every account for booking
	protected.GET("/doctors", h.Staff.ListDoctors)

	staff := protected.Group("/staff", staffOnly())
	{
		staff.GET("", h.Staff.List)
		staff.GET("/:id", h.Staff.Get)

		admin := middleware.RequireRoles(enum.RoleAdmin)
		staff.POST("", admin, h.Staff.Create)
		staff.PUT("/:id", admin, h.Staff.Update)
		staff.DELETE("/:id", admin, h.Staff.Delete)
	}
}

func registerAppointmentRoutes(protected *gin.RouterGroup, h *Handlers) {
	appointments := protected.Group("/appointments")
	{
		appointments.GET("", h.Appointment.List)
		appointments.POST("", h.Appointment.Book)
		appointments.GET("/:id", h.Appointment.Get)
		appointments.POST("/:id/cancel", h.Appointment.Cancel)

		clinical := middleware.RequireRoles(enum.RoleAdmin, enum.RoleDoctor, enum.RoleNurse, enum.RoleReceptionist)
		appointments.PUT("/:id/reschedule", clinical, h.Appointment.Reschedule)
		appointments.PUT("/:id/status", clinical, h.Appointment.UpdateStatus)
	}
}

func registerVisitRoutes(protected *gin.RouterGroup, h *Handlers) {
	visits := protected.Group("/visits")
	{
		visits.GET("", h.Visit.List)
		visits.GET("/:id", h.Visit.Get)

		clinical := middleware.RequireRoles(enum.RoleAdmin, enum.RoleDoctor, enum.RoleNurse, enum.RoleReceptionist)
		visits.POST("", clinical, h.Visit.Open)
		visits.PUT("/:id", clinical, h.Visit.Update)
		visits.POST("/:id/discharge", middleware.RequireRoles(enum.RoleAdmin, enum.RoleDoctor, enum.RoleNurse), h.Visit.Discharge)
	}
}

func registerBillingRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Billing.List)
		invoices.GET("/:id", h.Billing.Get)
		invoices.GET("/:id/payments", h.Billing.ListPayments)

		billing := middleware.RequireRoles(enum.RoleAdmin, enum.RoleReceptionist)
		invoices.POST("", billing, h.Billing.Create)
		invoices.PUT("/:id", billing, h.Billing.Update)
		invoices.POST("/:id/finalize", billing, h.Billing.Finalize)
		invoices.POST("/:id/cancel", billing, h.Billing.Cancel)
		// Payment capture uses idempotency middleware to prevent duplicates
		invoices.POST("/:id/payments", billing, middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Billing.RecordPayment)
		invoices.POST("/:id/receipt", billing, h.Billing.PrintReceipt)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	medicines := protected.Group("/medicines", staffOnly())
	{
		medicines.GET("", h.Inventory.List)
		medicines.GET("/low-stock", h.Inventory.GetLowStock)
		medicines.GET("/expiring", h.Inventory.GetExpiring)
		medicines.GET("/:id", h.Inventory.Get)
		medicines.GET("/:id/dispenses", h.Inventory.ListDispenses)

		stockKeeper := middleware.RequireRoles(enum.RoleAdmin, enum.RoleNurse)
		medicines.POST("", stockKeeper, h.Inventory.Create)
		medicines.PUT("/:id", stockKeeper, h.Inventory.Update)
		medicines.DELETE("/:id", middleware.RequireRoles(enum.RoleAdmin), h.Inventory.Delete)
		medicines.POST("/:id/restock", stockKeeper, h.Inventory.Restock)
		medicines.POST("/:id/dispense", middleware.RequireRoles(enum.RoleAdmin, enum.RoleDoctor, enum.RoleNurse), h.Inventory.Dispense)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("", h.Report.List)
		reports.GET("/:id", h.Report.Get)
		reports.GET("/:id/download", h.Report.Download)

		lab := middleware.RequireRoles(enum.RoleAdmin, enum.RoleDoctor, enum.RoleNurse, enum.RoleLabTechnician)
		reports.POST("", lab, h.Report.Create)
		reports.PUT("/:id", lab, h.Report.Update)
		reports.POST("/:id/complete", middleware.RequireRoles(enum.RoleAdmin, enum.RoleLabTechnician), h.Report.Complete)
		reports.POST("/:id/review", middleware.RequireRoles(enum.RoleAdmin, enum.RoleDoctor), h.Report.Review)
		reports.DELETE("/:id", middleware.RequireRoles(enum.RoleAdmin), h.Report.Delete)
	}
}
