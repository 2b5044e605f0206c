package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/billing"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/internal/infrastructure/cache"
	"github.com/medicore/hms-api/pkg/apperror"
	"github.com/medicore/hms-api/pkg/email"
	"github.com/medicore/hms-api/pkg/pagination"
	"github.com/medicore/hms-api/pkg/utils"
)

// BillingService handles invoices and payments
type BillingService struct {
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	patientRepo  repository.PatientRepository
	visitRepo    repository.VisitRepository
	settingsRepo repository.SettingsRepository
	emailService *email.EmailService
	cache        *cache.Cache
}

// NewBillingService creates a new billing service
func NewBillingService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	patientRepo repository.PatientRepository,
	visitRepo repository.VisitRepository,
	settingsRepo repository.SettingsRepository,
	emailService *email.EmailService,
	c *cache.Cache,
) *BillingService {
	return &BillingService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		patientRepo:  patientRepo,
		visitRepo:    visitRepo,
		settingsRepo: settingsRepo,
		emailService: emailService,
		cache:        c,
	}
}

// InvoiceItemInput represents one line item on an invoice
type InvoiceItemInput struct {
	Description string
	Category    enum.ItemCategory
	Quantity    int
	UnitPrice   float64
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	PatientID   uuid.UUID
	VisitID     *uuid.UUID
	Items       []InvoiceItemInput
	DiscountPct *float64
	TaxPct      *float64
	DueDate     *time.Time
	CreatedByID uuid.UUID
}

// CreateInvoice creates a draft invoice with computed totals.
// Tax and due date default from hospital settings when omitted.
func (s *BillingService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	if input.VisitID != nil {
		visit, err := s.visitRepo.GetByID(ctx, *input.VisitID)
		if err != nil {
			return nil, err
		}
		if visit == nil {
			return nil, apperror.NewNotFoundError("Visit")
		}
		if visit.PatientID != input.PatientID {
			return nil, apperror.NewBadRequestError("Visit belongs to a different patient")
		}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	discountPct := 0.0
	if input.DiscountPct != nil {
		discountPct = *input.DiscountPct
	}
	taxPct := settings.DefaultTaxPct
	if input.TaxPct != nil {
		taxPct = *input.TaxPct
	}
	if discountPct < 0 || discountPct > 100 {
		return nil, apperror.NewBadRequestError("Discount percentage must be between 0 and 100")
	}
	if taxPct < 0 || taxPct > 100 {
		return nil, apperror.NewBadRequestError("Tax percentage must be between 0 and 100")
	}

	items, lines, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	breakdown := billing.Totals(lines, discountPct, taxPct)

	now := time.Now()
	dueDate := now.AddDate(0, 0, settings.InvoiceDueDays)
	if input.DueDate != nil {
		if input.DueDate.Before(now) {
			return nil, apperror.NewBadRequestError("Due date cannot be in the past")
		}
		dueDate = *input.DueDate
	}

	seq, err := s.invoiceRepo.CountForDay(ctx, now)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		InvoiceNo:   utils.FormatDailyNo(settings.InvoicePrefix, now, seq+1),
		PatientID:   input.PatientID,
		VisitID:     input.VisitID,
		SubTotal:    breakdown.SubTotal,
		DiscountPct: discountPct,
		Discount:    breakdown.Discount,
		TaxPct:      taxPct,
		Tax:         breakdown.Tax,
		Total:       breakdown.Total,
		Paid:        0,
		Balance:     breakdown.Total,
		Status:      enum.InvoiceStatusDraft,
		DueDate:     dueDate,
		CreatedByID: input.CreatedByID,
		Items:       items,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

func buildItems(inputs []InvoiceItemInput) ([]entity.InvoiceItem, []billing.LineAmount, error) {
	if len(inputs) == 0 {
		return nil, nil, apperror.NewBadRequestError("Invoice requires at least one item")
	}

	items := make([]entity.InvoiceItem, 0, len(inputs))
	lines := make([]billing.LineAmount, 0, len(inputs))
	for i, in := range inputs {
		if in.Quantity <= 0 {
			return nil, nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if in.UnitPrice < 0 {
			return nil, nil, apperror.NewBadRequestError("Item unit price cannot be negative")
		}

		unitPrice := int64(in.UnitPrice * 100)
		items = append(items, entity.InvoiceItem{
			Description: in.Description,
			Category:    in.Category,
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
			Total:       int64(in.Quantity) * unitPrice,
			Position:    i,
		})
		lines = append(lines, billing.LineAmount{
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
		})
	}
	return items, lines, nil
}

// UpdateDraftInput represents the update input for draft invoices
type UpdateDraftInput struct {
	Items       []InvoiceItemInput
	DiscountPct *float64
	TaxPct      *float64
	DueDate     *time.Time
}

// UpdateDraft replaces a draft invoice's items and recomputes totals.
// Finalized invoices reject item mutation.
func (s *BillingService) UpdateDraft(ctx context.Context, id uuid.UUID, input *UpdateDraftInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.IsFinalized() {
		return nil, apperror.ErrInvoiceFinalized
	}

	if input.DiscountPct != nil {
		if *input.DiscountPct < 0 || *input.DiscountPct > 100 {
			return nil, apperror.NewBadRequestError("Discount percentage must be between 0 and 100")
		}
		invoice.DiscountPct = *input.DiscountPct
	}
	if input.TaxPct != nil {
		if *input.TaxPct < 0 || *input.TaxPct > 100 {
			return nil, apperror.NewBadRequestError("Tax percentage must be between 0 and 100")
		}
		invoice.TaxPct = *input.TaxPct
	}
	if input.DueDate != nil {
		invoice.DueDate = *input.DueDate
	}

	items, lines, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}

	breakdown := billing.Totals(lines, invoice.DiscountPct, invoice.TaxPct)
	invoice.Items = items
	invoice.SubTotal = breakdown.SubTotal
	invoice.Discount = breakdown.Discount
	invoice.Tax = breakdown.Tax
	invoice.Total = breakdown.Total
	invoice.Balance = breakdown.Total - invoice.Paid

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

// Finalize moves a draft invoice to pending, freezing its items
func (s *BillingService) Finalize(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.IsFinalized() {
		return nil, apperror.ErrInvoiceFinalized
	}

	invoice.Status = enum.InvoiceStatusPending
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return invoice, nil
}

// RecordPaymentInput represents the payment input
type RecordPaymentInput struct {
	InvoiceID     uuid.UUID
	Amount        float64
	Method        enum.PaymentMethod
	ReferenceNo   *string
	ChequeNo      *string
	BankName      *string
	ProcessedByID uuid.UUID
}

// RecordPayment applies a payment to a settleable invoice. The payment row
// and the invoice's paid/balance/status change together or not at all.
func (s *BillingService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceStatusDraft {
		return nil, apperror.NewConflictError("Finalize the invoice before taking payment")
	}
	if !invoice.Status.IsSettleable() {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("Cannot take payment on a %s invoice", invoice.Status))
	}

	amount := int64(input.Amount * 100)
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}
	if amount > invoice.Balance {
		return nil, apperror.NewAppError(http.StatusUnprocessableEntity, "Payment exceeds the outstanding balance")
	}

	payment := &entity.Payment{
		InvoiceID:     invoice.ID,
		Amount:        amount,
		Method:        input.Method,
		ReferenceNo:   input.ReferenceNo,
		ChequeNo:      input.ChequeNo,
		BankName:      input.BankName,
		ProcessedByID: input.ProcessedByID,
		PaidAt:        time.Now(),
	}

	invoice.Paid += amount
	invoice.Balance = invoice.Total - invoice.Paid
	if invoice.Balance == 0 {
		invoice.Status = enum.InvoiceStatusPaid
	} else {
		invoice.Status = enum.InvoiceStatusPartiallyPaid
	}

	if err := s.invoiceRepo.RecordPayment(ctx, invoice, payment); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	s.sendPaymentReceipt(ctx, invoice, payment)

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

func (s *BillingService) sendPaymentReceipt(ctx context.Context, invoice *entity.Invoice, payment *entity.Payment) {
	if s.emailService == nil {
		return
	}
	patient, err := s.patientRepo.GetByID(ctx, invoice.PatientID)
	if err != nil || patient == nil || patient.Email == nil {
		return
	}

	settings, err := s.settingsRepo.Get(ctx)
	currency := "INR"
	if err == nil && settings != nil {
		currency = settings.Currency
	}

	amount := fmt.Sprintf("%s %.2f", currency, float64(payment.Amount)/100)
	balance := fmt.Sprintf("%s %.2f", currency, float64(invoice.Balance)/100)
	if err := s.emailService.SendPaymentReceiptEmail(*patient.Email, patient.FullName(), invoice.InvoiceNo, amount, balance); err != nil {
		log.Printf("Warning: failed to send payment receipt for %s: %v", invoice.InvoiceNo, err)
	}
}

// CancelInvoice voids an invoice. Paid invoices cannot be cancelled.
func (s *BillingService) CancelInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceStatusPaid {
		return nil, apperror.NewConflictError("Paid invoices cannot be cancelled")
	}
	if invoice.Status == enum.InvoiceStatusCancelled {
		return invoice, nil
	}

	invoice.Status = enum.InvoiceStatusCancelled
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return invoice, nil
}

// GetInvoice retrieves an invoice with items and payments
func (s *BillingService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	s.decorateOverdue(invoice, time.Now())
	return invoice, nil
}

// ListInvoices lists invoices with filtering. Statuses are swept first so
// listings never show a stale pending invoice that is already past due.
func (s *BillingService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		log.Printf("Warning: overdue sweep failed: %v", err)
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range invoices {
		s.decorateOverdue(&invoices[i], now)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListPayments lists payments for an invoice
func (s *BillingService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}

// SweepOverdue flips every settleable invoice past its due date to overdue
func (s *BillingService) SweepOverdue(ctx context.Context) (int64, error) {
	changed, err := s.invoiceRepo.MarkOverdue(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		s.invalidateDashboard(ctx)
	}
	return changed, nil
}

// decorateOverdue stamps the derived overdue state onto an invoice before
// it leaves the service
func (s *BillingService) decorateOverdue(invoice *entity.Invoice, now time.Time) {
	invoice.IsOverdue = billing.IsOverdue(invoice.Status, invoice.DueDate, now)
	if invoice.IsOverdue {
		invoice.DaysOverdue = billing.DaysOverdue(invoice.DueDate, now)
	} else {
		invoice.DaysOverdue = 0
	}
}

func (s *BillingService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		log.Printf("Warning: failed to invalidate dashboard cache: %v", err)
	}
}
