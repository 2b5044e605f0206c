package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	domainRepo "github.com/medicore/hms-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	// Line items ride along via the association
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(PatientScope(ctx)).
		Preload("Patient").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_items.position ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.paid_at ASC")
		}).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(PatientScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_items.position ASC")
		}).
		First(&invoice, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Items are replaced wholesale while the invoice is still a draft.
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&entity.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(invoice).Error
	})
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(PatientScope(ctx))

	if params.Search != "" {
		query = query.
			Joins("JOIN patients ON patients.id = invoices.patient_id").
			Where("invoices.invoice_no ILIKE ? OR patients.first_name ILIKE ? OR patients.last_name ILIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("invoices.status = ?", *params.Status)
	}

	if params.PatientID != nil {
		query = query.Where("invoices.patient_id = ?", *params.PatientID)
	}

	if params.VisitID != nil {
		query = query.Where("invoices.visit_id = ?", *params.VisitID)
	}

	if params.OverdueOnly {
		query = query.Where("invoices.status IN ? AND invoices.due_date < ?", []enum.InvoiceStatus{
			enum.InvoiceStatusPending,
			enum.InvoiceStatusPartiallyPaid,
			enum.InvoiceStatusOverdue,
		}, time.Now())
	}

	if params.From != nil {
		query = query.Where("invoices.created_at >= ?", *params.From)
	}

	if params.To != nil {
		query = query.Where("invoices.created_at <= ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "invoices.created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = "invoices." + params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Patient").
		Order(sortBy + " " + sortOrder).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListAll(ctx context.Context) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).Preload("Patient").Order("created_at ASC").Find(&invoices).Error
	return invoices, err
}

// RecordPayment inserts the payment row and updates the invoice's paid,
// balance and status columns in one transaction, so a reader never observes
// a payment without the matching invoice totals.
func (r *invoiceRepository) RecordPayment(ctx context.Context, invoice *entity.Invoice, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Invoice{}).
			Where("id = ?", invoice.ID).
			Updates(map[string]interface{}{
				"paid":    invoice.Paid,
				"balance": invoice.Balance,
				"status":  invoice.Status,
			}).Error
	})
}

func (r *invoiceRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("status IN ? AND due_date < ?", []enum.InvoiceStatus{
			enum.InvoiceStatusPending,
			enum.InvoiceStatusPartiallyPaid,
		}, asOf).
		Update("status", enum.InvoiceStatusOverdue)
	return result.RowsAffected, result.Error
}

func (r *invoiceRepository) CountForDay(ctx context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).Unscoped().
		Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 0, 1)).
		Count(&count).Error
	return count, err
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).Preload("Invoice").First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListBetween(ctx context.Context, from, to time.Time) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("paid_at >= ? AND paid_at <= ?", from, to).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}
