package request

import (
	"time"

	"github.com/medicore/hms-api/internal/domain/enum"
)

// CreatePatientRequest represents a patient registration request
type CreatePatientRequest struct {
	FirstName        string      `json:"first_name" binding:"required,min=2,max=100"`
	LastName         string      `json:"last_name" binding:"required,min=2,max=100"`
	Gender           enum.Gender `json:"gender"`
	DateOfBirth      time.Time   `json:"date_of_birth" binding:"required"`
	BloodGroup       *string     `json:"blood_group" binding:"omitempty,max=10"`
	Phone            *string     `json:"phone"`
	Email            *string     `json:"email" binding:"omitempty,email"`
	Address          *string     `json:"address"`
	EmergencyContact *string     `json:"emergency_contact"`
	EmergencyPhone   *string     `json:"emergency_phone"`
	Allergies        *string     `json:"allergies"`
}

// UpdatePatientRequest represents a patient update request
type UpdatePatientRequest struct {
	FirstName        *string             `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName         *string             `json:"last_name" binding:"omitempty,min=2,max=100"`
	Gender           *enum.Gender        `json:"gender"`
	DateOfBirth      *time.Time          `json:"date_of_birth"`
	BloodGroup       *string             `json:"blood_group" binding:"omitempty,max=10"`
	Phone            *string             `json:"phone"`
	Email            *string             `json:"email" binding:"omitempty,email"`
	Address          *string             `json:"address"`
	EmergencyContact *string             `json:"emergency_contact"`
	EmergencyPhone   *string             `json:"emergency_phone"`
	Allergies        *string             `json:"allergies"`
	Status           *enum.PatientStatus `json:"status"`
}

// PatientFilterRequest represents patient filter parameters
type PatientFilterRequest struct {
	Search    string `form:"search"`
	Gender    string `form:"gender"`
	Status    string `form:"status"`
	From      string `form:"from"`
	To        string `form:"to"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
