package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff represents a hospital staff member's professional profile.
// Account details (name, email, role) live on the linked User.
type Staff struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StaffNo         string         `gorm:"size:100;unique;not null" json:"staff_no"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Department      string         `gorm:"size:255;not null;index" json:"department"`
	Designation     string         `gorm:"size:255" json:"designation"`
	Specialization  *string        `gorm:"size:255" json:"specialization,omitempty"`
	LicenseNo       *string        `gorm:"size:100" json:"license_no,omitempty"`
	ConsultationFee int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	JoiningDate     time.Time      `gorm:"type:date" json:"joining_date"`
	Active          bool           `gorm:"default:true" json:"active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Staff) MarshalJSON() ([]byte, error) {
	type Alias Staff
	return json.Marshal(&struct {
		Alias
		ConsultationFee float64 `json:"consultation_fee"`
	}{
		Alias:           Alias(s),
		ConsultationFee: float64(s.ConsultationFee) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new staff record
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}
