package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Patient represents a registered patient
type Patient struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	PatientNo        string             `gorm:"size:100;unique;not null" json:"patient_no"`
	UserID           *uuid.UUID         `gorm:"type:uuid;index" json:"user_id,omitempty"`
	FirstName        string             `gorm:"size:255;not null" json:"first_name"`
	LastName         string             `gorm:"size:255;not null" json:"last_name"`
	Gender           enum.Gender        `gorm:"default:2" json:"gender"`
	DateOfBirth      time.Time          `gorm:"type:date;not null" json:"date_of_birth"`
	BloodGroup       *string            `gorm:"size:10" json:"blood_group,omitempty"`
	Phone            *string            `gorm:"size:50" json:"phone,omitempty"`
	Email            *string            `gorm:"size:255" json:"email,omitempty"`
	Address          *string            `gorm:"type:text" json:"address,omitempty"`
	EmergencyContact *string            `gorm:"size:255" json:"emergency_contact,omitempty"`
	EmergencyPhone   *string            `gorm:"size:50" json:"emergency_phone,omitempty"`
	Allergies        *string            `gorm:"type:text" json:"allergies,omitempty"`
	Status           enum.PatientStatus `gorm:"default:0;index" json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
	Visits       []Visit       `gorm:"foreignKey:PatientID" json:"-"`
	Invoices     []Invoice     `gorm:"foreignKey:PatientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new patient
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Patient model
func (Patient) TableName() string {
	return "patients"
}

// FullName returns the patient's display name
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age returns the patient's age in full years as of now.
// Derived on every read; never stored.
func (p *Patient) Age(now time.Time) int {
	years := now.Year() - p.DateOfBirth.Year()
	if now.YearDay() < p.DateOfBirth.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
