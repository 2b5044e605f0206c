package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/pkg/pagination"
)

// PatientFilterParams contains filtering parameters for patient queries
type PatientFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Gender     *enum.Gender
	Status     *enum.PatientStatus
	From       *time.Time
	To         *time.Time
	SortBy     string
	SortOrder  string
}

// PatientRepository defines the interface for patient data operations
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	GetByPatientNo(ctx context.Context, patientNo string) (*entity.Patient, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PatientFilterParams) ([]entity.Patient, int64, error)
	// ListAll returns the full patient register without pagination,
	// for summaries and exports.
	ListAll(ctx context.Context) ([]entity.Patient, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
