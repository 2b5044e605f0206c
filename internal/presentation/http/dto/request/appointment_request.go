package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/enum"
)

// BookAppointmentRequest represents an appointment booking request
type BookAppointmentRequest struct {
	PatientID   uuid.UUID            `json:"patient_id" binding:"required"`
	DoctorID    uuid.UUID            `json:"doctor_id" binding:"required"`
	ScheduledAt time.Time            `json:"scheduled_at" binding:"required"`
	DurationMin int                  `json:"duration_min" binding:"omitempty,min=5,max=240"`
	Type        enum.AppointmentType `json:"type"`
	Reason      *string              `json:"reason"`
}

// RescheduleRequest represents an appointment reschedule request
type RescheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	DurationMin int       `json:"duration_min" binding:"omitempty,min=5,max=240"`
}

// UpdateAppointmentStatusRequest represents a status transition request
type UpdateAppointmentStatusRequest struct {
	Status enum.AppointmentStatus `json:"status" binding:"required"`
	Notes  *string                `json:"notes"`
}

// CancelAppointmentRequest represents a cancellation request
type CancelAppointmentRequest struct {
	Reason *string `json:"reason"`
}

// AppointmentFilterRequest represents appointment filter parameters
type AppointmentFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	Type      string `form:"type"`
	PatientID string `form:"patient_id"`
	DoctorID  string `form:"doctor_id"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
