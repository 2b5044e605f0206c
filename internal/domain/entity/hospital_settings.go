package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HospitalSettings represents hospital-wide configuration. A single row is
// seeded at startup and updated in place.
type HospitalSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Identity
	HospitalName string  `gorm:"size:255;default:'Medicore General Hospital'" json:"hospital_name"`
	Address      *string `gorm:"type:text" json:"address,omitempty"`
	Phone        *string `gorm:"size:50" json:"phone,omitempty"`
	Email        *string `gorm:"size:255" json:"email,omitempty"`

	// Billing defaults
	Currency          string  `gorm:"size:10;default:'INR'" json:"currency"`
	DefaultTaxPct     float64 `gorm:"default:5" json:"default_tax_pct"`
	InvoiceDueDays    int     `gorm:"default:14" json:"invoice_due_days"`
	InvoicePrefix     string  `gorm:"size:20;default:'INV'" json:"invoice_prefix"`

	// Inventory defaults
	ExpiryWindowDays  int `gorm:"default:30" json:"expiry_window_days"`
	DefaultMinStock   int `gorm:"default:10" json:"default_min_stock"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *HospitalSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the HospitalSettings model
func (HospitalSettings) TableName() string {
	return "hospital_settings"
}
