package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/pkg/pagination"
)

// MedicineFilterParams contains filtering parameters for medicine queries
type MedicineFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// MedicineRepository defines the interface for medicine data operations
type MedicineRepository interface {
	Create(ctx context.Context, medicine *entity.Medicine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error)
	GetByCode(ctx context.Context, code string) (*entity.Medicine, error)
	Update(ctx context.Context, medicine *entity.Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *MedicineFilterParams) ([]entity.Medicine, int64, error)
	ListAll(ctx context.Context) ([]entity.Medicine, error)
	ListLowStock(ctx context.Context) ([]entity.Medicine, error)
	ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]entity.Medicine, error)
	// Restock atomically increments quantity and returns the new value.
	Restock(ctx context.Context, id uuid.UUID, quantity int) (int, error)
	// Dispense atomically decrements stock and inserts the dispense record
	// in one transaction. ErrInsufficientStock semantics: the conditional
	// decrement matches zero rows and nothing is written.
	Dispense(ctx context.Context, record *entity.DispenseRecord) (remaining int, err error)
}

// DispenseRepository defines the interface for dispense record queries
type DispenseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DispenseRecord, error)
	ListByMedicine(ctx context.Context, medicineID uuid.UUID, params *pagination.PaginationParams) ([]entity.DispenseRecord, int64, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, params *pagination.PaginationParams) ([]entity.DispenseRecord, int64, error)
}
