package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Appointment represents a scheduled consultation slot with a doctor
type Appointment struct {
	ID          uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	PatientID   uuid.UUID              `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID              `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ScheduledAt time.Time              `gorm:"not null;index" json:"scheduled_at"`
	DurationMin int                    `gorm:"default:30" json:"duration_min"`
	Type        enum.AppointmentType   `gorm:"default:0" json:"type"`
	Status      enum.AppointmentStatus `gorm:"default:0;index" json:"status"`
	Reason      *string                `gorm:"type:text" json:"reason,omitempty"`
	Notes       *string                `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID uuid.UUID              `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	DeletedAt   gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	Patient   Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    Staff   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	CreatedBy User    `gorm:"foreignKey:CreatedByID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// EndsAt returns the end of the appointment slot
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMin) * time.Minute)
}

// Overlaps reports whether two appointment slots intersect in time
func (a *Appointment) Overlaps(other *Appointment) bool {
	return a.ScheduledAt.Before(other.EndsAt()) && other.ScheduledAt.Before(a.EndsAt())
}
