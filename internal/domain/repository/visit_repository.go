package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/pkg/pagination"
)

// VisitFilterParams contains filtering parameters for visit queries
type VisitFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.VisitStatus
	Type       *enum.VisitType
	PatientID  *uuid.UUID
	StaffID    *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// VisitRepository defines the interface for visit data operations
type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Visit, error)
	GetByVisitNo(ctx context.Context, visitNo string) (*entity.Visit, error)
	Update(ctx context.Context, visit *entity.Visit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *VisitFilterParams) ([]entity.Visit, int64, error)
	ListAll(ctx context.Context) ([]entity.Visit, error)
	// ListOpenByPatient returns the patient's visits that have not been
	// discharged or transferred.
	ListOpenByPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Visit, error)
}
