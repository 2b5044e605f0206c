package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/pkg/pagination"
)

// StaffFilterParams contains filtering parameters for staff queries
type StaffFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	Department  string
	Designation string
	ActiveOnly  bool
}

// StaffRepository defines the interface for staff data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Staff, error)
	GetByStaffNo(ctx context.Context, staffNo string) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *StaffFilterParams) ([]entity.Staff, int64, error)
	// ListDoctors returns active staff whose linked user holds the doctor
	// role, for appointment booking.
	ListDoctors(ctx context.Context) ([]entity.Staff, error)
}
