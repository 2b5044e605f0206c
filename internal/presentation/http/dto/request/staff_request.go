package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateStaffRequest represents a staff profile creation request
type CreateStaffRequest struct {
	UserID          uuid.UUID `json:"user_id" binding:"required"`
	Department      string    `json:"department" binding:"required,min=2,max=255"`
	Designation     string    `json:"designation" binding:"required,min=2,max=255"`
	Specialization  *string   `json:"specialization"`
	LicenseNo       *string   `json:"license_no"`
	ConsultationFee float64   `json:"consultation_fee" binding:"min=0"`
	JoiningDate     time.Time `json:"joining_date" binding:"required"`
}

// UpdateStaffRequest represents a staff profile update request
type UpdateStaffRequest struct {
	Department      *string  `json:"department" binding:"omitempty,min=2,max=255"`
	Designation     *string  `json:"designation" binding:"omitempty,min=2,max=255"`
	Specialization  *string  `json:"specialization"`
	LicenseNo       *string  `json:"license_no"`
	ConsultationFee *float64 `json:"consultation_fee" binding:"omitempty,min=0"`
	Active          *bool    `json:"active"`
}

// StaffFilterRequest represents staff filter parameters
type StaffFilterRequest struct {
	Search      string `form:"search"`
	Department  string `form:"department"`
	Designation string `form:"designation"`
	ActiveOnly  bool   `form:"active_only"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}
