package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medicine represents a pharmacy stock item
type Medicine struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code         string         `gorm:"size:100;unique;not null" json:"code"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	GenericName  *string        `gorm:"size:255" json:"generic_name,omitempty"`
	Category     *string        `gorm:"size:255;index" json:"category,omitempty"`
	BatchNo      *string        `gorm:"size:100" json:"batch_no,omitempty"`
	Unit         string         `gorm:"size:50;default:'tablet'" json:"unit"`
	Quantity     int            `gorm:"default:0" json:"quantity"`
	MinThreshold int            `gorm:"default:0" json:"min_threshold"`
	UnitPrice    int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ExpiryDate   time.Time      `gorm:"type:date;not null" json:"expiry_date"`
	Manufacturer *string        `gorm:"size:255" json:"manufacturer,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Dispenses []DispenseRecord `gorm:"foreignKey:MedicineID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m Medicine) MarshalJSON() ([]byte, error) {
	type Alias Medicine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(m),
		UnitPrice: float64(m.UnitPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new medicine
func (m *Medicine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Medicine model
func (Medicine) TableName() string {
	return "medicines"
}

// StockValue returns quantity * unit price in cents
func (m *Medicine) StockValue() int64 {
	return int64(m.Quantity) * m.UnitPrice
}

// DispenseRecord represents medicine handed out to a patient.
// Created in the same transaction as the stock decrement. Append-only.
type DispenseRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MedicineID    uuid.UUID `gorm:"type:uuid;not null;index" json:"medicine_id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
	DispensedByID uuid.UUID `gorm:"type:uuid;not null" json:"dispensed_by_id"`
	DispensedAt   time.Time `gorm:"not null" json:"dispensed_at"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Medicine    Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
	Patient     Patient  `gorm:"foreignKey:PatientID" json:"-"`
	DispensedBy User     `gorm:"foreignKey:DispensedByID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new dispense record
func (d *DispenseRecord) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DispenseRecord model
func (DispenseRecord) TableName() string {
	return "dispense_records"
}
