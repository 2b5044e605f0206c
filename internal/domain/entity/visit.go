package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Visit represents a patient's stay or consultation episode
type Visit struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	VisitNo       string           `gorm:"size:100;unique;not null" json:"visit_no"`
	PatientID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"patient_id"`
	StaffID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"staff_id"`
	AppointmentID *uuid.UUID       `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Type          enum.VisitType   `gorm:"default:0" json:"type"`
	Status        enum.VisitStatus `gorm:"default:0;index" json:"status"`
	AdmittedAt    time.Time        `gorm:"not null" json:"admitted_at"`
	DischargedAt  *time.Time       `json:"discharged_at,omitempty"`
	Ward          *string          `gorm:"size:100" json:"ward,omitempty"`
	BedNo         *string          `gorm:"size:50" json:"bed_no,omitempty"`
	Diagnosis     *string          `gorm:"type:text" json:"diagnosis,omitempty"`
	Notes         *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Patient     Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Staff       Staff        `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new visit
func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Visit model
func (Visit) TableName() string {
	return "visits"
}

// LengthOfStay returns the stay duration in whole days, minimum 1 for any
// admission. Open visits are measured against now.
func (v *Visit) LengthOfStay(now time.Time) int {
	end := now
	if v.DischargedAt != nil {
		end = *v.DischargedAt
	}
	if end.Before(v.AdmittedAt) {
		return 0
	}
	days := int(end.Sub(v.AdmittedAt).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
