package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/pkg/pagination"
)

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	Status      *enum.InvoiceStatus
	PatientID   *uuid.UUID
	VisitID     *uuid.UUID
	OverdueOnly bool
	From        *time.Time
	To          *time.Time
	SortBy      string
	SortOrder   string
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// Create stores the invoice together with its line items.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ListAll(ctx context.Context) ([]entity.Invoice, error)
	// RecordPayment inserts the payment and applies the recomputed
	// paid/balance/status fields to the invoice with all-or-nothing
	// visibility.
	RecordPayment(ctx context.Context, invoice *entity.Invoice, payment *entity.Payment) error
	// MarkOverdue flips every settleable invoice past its due date to the
	// overdue status and returns how many rows changed.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
	CountForDay(ctx context.Context, day time.Time) (int64, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.Payment, error)
}
