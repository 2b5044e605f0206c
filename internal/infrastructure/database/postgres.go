package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/config"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Account entities
		&entity.User{},
		&entity.PasswordResetToken{},

		// Clinical entities
		&entity.Patient{},
		&entity.Staff{},
		&entity.Appointment{},
		&entity.Visit{},
		&entity.MedicalReport{},

		// Billing entities
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Payment{},

		// Pharmacy entities
		&entity.Medicine{},
		&entity.DispenseRecord{},

		// System entities
		&entity.Notification{},
		&entity.IdempotencyKey{},
		&entity.HospitalSettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the hospital settings row and the admin account
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Single settings row; created once, edited through the API afterwards
	var settings entity.HospitalSettings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.HospitalSettings{
			ID:               uuid.New(),
			HospitalName:     viper.GetString("HOSPITAL_NAME"),
			Currency:         "INR",
			DefaultTaxPct:    5,
			InvoiceDueDays:   14,
			InvoicePrefix:    "INV",
			ExpiryWindowDays: 30,
			DefaultMinStock:  10,
		}
		if settings.HospitalName == "" {
			settings.HospitalName = "Medicore General Hospital"
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create hospital settings: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Hospital Admin"
				}
				// Split admin name into first and last name
				firstName := adminName
				lastName := ""
				for i, c := range adminName {
					if c == ' ' {
						firstName = adminName[:i]
						lastName = adminName[i+1:]
						break
					}
				}
				adminUser := entity.User{
					ID:        uuid.New(),
					FirstName: firstName,
					LastName:  lastName,
					Email:     adminEmail,
					Password:  string(hashedPassword),
					Role:      enum.RoleAdmin,
					Active:    true,
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
