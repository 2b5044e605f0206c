package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/pkg/pagination"
)

// AppointmentFilterParams contains filtering parameters for appointment queries
type AppointmentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.AppointmentStatus
	Type       *enum.AppointmentType
	PatientID  *uuid.UUID
	DoctorID   *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *AppointmentFilterParams) ([]entity.Appointment, int64, error)
	ListAll(ctx context.Context) ([]entity.Appointment, error)
	// ListForDoctorBetween returns a doctor's non-terminal appointments
	// intersecting the window, for conflict checks.
	ListForDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)
}
