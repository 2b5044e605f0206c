package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/pkg/pagination"
)

// ReportFilterParams contains filtering parameters for medical report queries
type ReportFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.ReportType
	Status     *enum.ReportStatus
	PatientID  *uuid.UUID
	VisitID    *uuid.UUID
}

// ReportRepository defines the interface for medical report data operations
type ReportRepository interface {
	Create(ctx context.Context, report *entity.MedicalReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MedicalReport, error)
	Update(ctx context.Context, report *entity.MedicalReport) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ReportFilterParams) ([]entity.MedicalReport, int64, error)
	CountByStatus(ctx context.Context, status enum.ReportStatus) (int64, error)
}
