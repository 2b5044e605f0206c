package request

import (
	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/enum"
)

// OpenVisitRequest represents an admission request
type OpenVisitRequest struct {
	PatientID     uuid.UUID      `json:"patient_id" binding:"required"`
	StaffID       uuid.UUID      `json:"staff_id" binding:"required"`
	AppointmentID *uuid.UUID     `json:"appointment_id"`
	Type          enum.VisitType `json:"type"`
	Ward          *string        `json:"ward"`
	BedNo         *string        `json:"bed_no"`
	Diagnosis     *string        `json:"diagnosis"`
	Notes         *string        `json:"notes"`
}

// UpdateVisitRequest represents a visit update request
type UpdateVisitRequest struct {
	Status    *enum.VisitStatus `json:"status"`
	Ward      *string           `json:"ward"`
	BedNo     *string           `json:"bed_no"`
	Diagnosis *string           `json:"diagnosis"`
	Notes     *string           `json:"notes"`
}

// DischargeRequest represents a discharge request
type DischargeRequest struct {
	Status enum.VisitStatus `json:"status"`
	Notes  *string          `json:"notes"`
}

// VisitFilterRequest represents visit filter parameters
type VisitFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	Type      string `form:"type"`
	PatientID string `form:"patient_id"`
	StaffID   string `form:"staff_id"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
