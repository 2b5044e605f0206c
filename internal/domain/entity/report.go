package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/enum"
	"gorm.io/gorm"
)

// MedicalReport represents a report document attached to a patient record
type MedicalReport struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	PatientID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	VisitID      *uuid.UUID        `gorm:"type:uuid;index" json:"visit_id,omitempty"`
	Type         enum.ReportType   `gorm:"default:4;index" json:"type"`
	Status       enum.ReportStatus `gorm:"default:0;index" json:"status"`
	Title        string            `gorm:"size:255;not null" json:"title"`
	Findings     *string           `gorm:"type:text" json:"findings,omitempty"`
	FileName     *string           `gorm:"size:255" json:"file_name,omitempty"`
	FilePath     *string           `gorm:"size:512" json:"-"`
	FileSize     *int64            `json:"file_size,omitempty"`
	UploadedByID uuid.UUID         `gorm:"type:uuid;not null" json:"uploaded_by_id"`
	ReviewedByID *uuid.UUID        `gorm:"type:uuid" json:"reviewed_by_id,omitempty"`
	ReviewedAt   *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Patient    Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Visit      *Visit  `gorm:"foreignKey:VisitID" json:"-"`
	UploadedBy User    `gorm:"foreignKey:UploadedByID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new report
func (r *MedicalReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MedicalReport model
func (MedicalReport) TableName() string {
	return "medical_reports"
}

// HasFile reports whether an attachment is stored for the report
func (r *MedicalReport) HasFile() bool {
	return r.FilePath != nil && *r.FilePath != ""
}
