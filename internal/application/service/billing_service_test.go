package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/pkg/apperror"
	"github.com/medicore/hms-api/pkg/pagination"
)

func newTestBillingService() (*BillingService, *mockInvoiceRepo, *mockPatientRepo) {
	invoiceRepo := newMockInvoiceRepo()
	patientRepo := newMockPatientRepo()
	svc := NewBillingService(
		invoiceRepo,
		&mockPaymentRepo{invoiceRepo: invoiceRepo},
		patientRepo,
		newMockVisitRepo(),
		newMockSettingsRepo(),
		nil,
		nil,
	)
	return svc, invoiceRepo, patientRepo
}

func seedPatient(repo *mockPatientRepo) *entity.Patient {
	p := &entity.Patient{
		PatientNo:   "PAT-TEST01",
		FirstName:   "Asha",
		LastName:    "Rao",
		DateOfBirth: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	repo.Create(context.Background(), p)
	return p
}

func TestCreateInvoice(t *testing.T) {
	svc, _, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	discount := 10.0
	invoice, err := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		PatientID: patient.ID,
		Items: []InvoiceItemInput{
			{Description: "Consultation", Category: enum.ItemCategoryConsultation, Quantity: 1, UnitPrice: 500},
			{Description: "X-Ray", Category: enum.ItemCategoryTest, Quantity: 2, UnitPrice: 250},
		},
		DiscountPct: &discount,
		CreatedByID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if invoice.Status != enum.InvoiceStatusDraft {
		t.Errorf("expected draft status, got %s", invoice.Status)
	}
	if invoice.SubTotal != 100000 {
		t.Errorf("expected subtotal 100000, got %d", invoice.SubTotal)
	}
	if invoice.Discount != 10000 {
		t.Errorf("expected discount 10000, got %d", invoice.Discount)
	}
	// tax defaults to 5% from settings, applied after discount
	if invoice.Tax != 4500 {
		t.Errorf("expected tax 4500, got %d", invoice.Tax)
	}
	if invoice.Total != 94500 {
		t.Errorf("expected total 94500, got %d", invoice.Total)
	}
	if invoice.Balance != invoice.Total {
		t.Errorf("expected balance to equal total, got %d", invoice.Balance)
	}
	if invoice.InvoiceNo != "INV-"+time.Now().Format("20060102")+"-0001" {
		t.Errorf("unexpected invoice number %s", invoice.InvoiceNo)
	}
}

func TestCreateInvoice_SequenceIncrements(t *testing.T) {
	svc, _, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	input := &CreateInvoiceInput{
		PatientID:   patient.ID,
		Items:       []InvoiceItemInput{{Description: "Consultation", Quantity: 1, UnitPrice: 500}},
		CreatedByID: uuid.New(),
	}
	svc.CreateInvoice(context.Background(), input)
	second, err := svc.CreateInvoice(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.InvoiceNo != "INV-"+time.Now().Format("20060102")+"-0002" {
		t.Errorf("unexpected invoice number %s", second.InvoiceNo)
	}
}

func TestCreateInvoice_NoItems(t *testing.T) {
	svc, _, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	_, err := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		PatientID:   patient.ID,
		CreatedByID: uuid.New(),
	})
	if err == nil {
		t.Error("expected error for empty item list")
	}
}

func TestUpdateDraft_FinalizedRejected(t *testing.T) {
	svc, _, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	invoice, _ := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		PatientID:   patient.ID,
		Items:       []InvoiceItemInput{{Description: "Consultation", Quantity: 1, UnitPrice: 500}},
		CreatedByID: uuid.New(),
	})
	if _, err := svc.Finalize(context.Background(), invoice.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.UpdateDraft(context.Background(), invoice.ID, &UpdateDraftInput{
		Items: []InvoiceItemInput{{Description: "Consultation", Quantity: 2, UnitPrice: 500}},
	})
	if !errors.Is(err, apperror.ErrInvoiceFinalized) {
		t.Errorf("expected ErrInvoiceFinalized, got %v", err)
	}
}

func TestRecordPayment_Partial(t *testing.T) {
	svc, _, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	invoice, _ := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		PatientID:   patient.ID,
		Items:       []InvoiceItemInput{{Description: "Consultation", Quantity: 1, UnitPrice: 1000}},
		CreatedByID: uuid.New(),
	})
	svc.Finalize(context.Background(), invoice.ID)

	updated, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        400,
		Method:        enum.PaymentMethodCash,
		ProcessedByID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != enum.InvoiceStatusPartiallyPaid {
		t.Errorf("expected partially_paid, got %s", updated.Status)
	}
	if updated.Paid != 40000 {
		t.Errorf("expected paid 40000, got %d", updated.Paid)
	}
	if updated.Balance != updated.Total-40000 {
		t.Errorf("unexpected balance %d", updated.Balance)
	}
	if len(updated.Payments) != 1 {
		t.Errorf("expected 1 payment, got %d", len(updated.Payments))
	}
}

func TestRecordPayment_SettlesInvoice(t *testing.T) {
	svc, _, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	invoice, _ := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		PatientID:   patient.ID,
		Items:       []InvoiceItemInput{{Description: "Consultation", Quantity: 1, UnitPrice: 1000}},
		CreatedByID: uuid.New(),
	})
	finalized, _ := svc.Finalize(context.Background(), invoice.ID)

	updated, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        float64(finalized.Total) / 100,
		Method:        enum.PaymentMethodCard,
		ProcessedByID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != enum.InvoiceStatusPaid {
		t.Errorf("expected paid, got %s", updated.Status)
	}
	if updated.Balance != 0 {
		t.Errorf("expected zero balance, got %d", updated.Balance)
	}
}

func TestRecordPayment_DraftRejected(t *testing.T) {
	svc, _, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	invoice, _ := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		PatientID:   patient.ID,
		Items:       []InvoiceItemInput{{Description: "Consultation", Quantity: 1, UnitPrice: 1000}},
		CreatedByID: uuid.New(),
	})

	_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        100,
		Method:        enum.PaymentMethodCash,
		ProcessedByID: uuid.New(),
	})
	if err == nil {
		t.Error("expected error for payment on draft invoice")
	}
}

func TestRecordPayment_OverpayRejected(t *testing.T) {
	svc, _, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	invoice, _ := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		PatientID:   patient.ID,
		Items:       []InvoiceItemInput{{Description: "Consultation", Quantity: 1, UnitPrice: 100}},
		CreatedByID: uuid.New(),
	})
	svc.Finalize(context.Background(), invoice.ID)

	_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        10000,
		Method:        enum.PaymentMethodCash,
		ProcessedByID: uuid.New(),
	})
	if err == nil {
		t.Error("expected error for payment above balance")
	}
}

func TestCancelInvoice_PaidRejected(t *testing.T) {
	svc, _, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	invoice, _ := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		PatientID:   patient.ID,
		Items:       []InvoiceItemInput{{Description: "Consultation", Quantity: 1, UnitPrice: 100}},
		CreatedByID: uuid.New(),
	})
	finalized, _ := svc.Finalize(context.Background(), invoice.ID)
	svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        float64(finalized.Total) / 100,
		Method:        enum.PaymentMethodCash,
		ProcessedByID: uuid.New(),
	})

	_, err := svc.CancelInvoice(context.Background(), invoice.ID)
	if err == nil {
		t.Error("expected error when cancelling a paid invoice")
	}
}

func TestSweepOverdue(t *testing.T) {
	svc, invoiceRepo, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	pastDue := &entity.Invoice{
		InvoiceNo: "INV-20250101-0001",
		PatientID: patient.ID,
		Status:    enum.InvoiceStatusPending,
		Total:     10000,
		Balance:   10000,
		DueDate:   time.Now().AddDate(0, 0, -3),
	}
	current := &entity.Invoice{
		InvoiceNo: "INV-20250101-0002",
		PatientID: patient.ID,
		Status:    enum.InvoiceStatusPending,
		Total:     10000,
		Balance:   10000,
		DueDate:   time.Now().AddDate(0, 0, 3),
	}
	invoiceRepo.Create(context.Background(), pastDue)
	invoiceRepo.Create(context.Background(), current)

	changed, err := svc.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed != 1 {
		t.Errorf("expected 1 invoice swept, got %d", changed)
	}

	swept, _ := invoiceRepo.GetByID(context.Background(), pastDue.ID)
	if swept.Status != enum.InvoiceStatusOverdue {
		t.Errorf("expected overdue, got %s", swept.Status)
	}
	untouched, _ := invoiceRepo.GetByID(context.Background(), current.ID)
	if untouched.Status != enum.InvoiceStatusPending {
		t.Errorf("expected pending, got %s", untouched.Status)
	}
}

func TestGetInvoice_EmbedsOverdueState(t *testing.T) {
	svc, invoiceRepo, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	// 50h past due reads as 3 days since partial days round up
	pastDue := &entity.Invoice{
		InvoiceNo: "INV-20250101-0003",
		PatientID: patient.ID,
		Status:    enum.InvoiceStatusOverdue,
		Total:     10000,
		Balance:   10000,
		DueDate:   time.Now().Add(-50 * time.Hour),
	}
	settled := &entity.Invoice{
		InvoiceNo: "INV-20250101-0004",
		PatientID: patient.ID,
		Status:    enum.InvoiceStatusPaid,
		Total:     10000,
		Paid:      10000,
		DueDate:   time.Now().Add(-50 * time.Hour),
	}
	invoiceRepo.Create(context.Background(), pastDue)
	invoiceRepo.Create(context.Background(), settled)

	got, err := svc.GetInvoice(context.Background(), pastDue.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsOverdue {
		t.Error("expected invoice to be overdue")
	}
	if got.DaysOverdue != 3 {
		t.Errorf("expected 3 days overdue, got %d", got.DaysOverdue)
	}

	got, err = svc.GetInvoice(context.Background(), settled.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsOverdue || got.DaysOverdue != 0 {
		t.Errorf("paid invoice must never read as overdue, got %v/%d", got.IsOverdue, got.DaysOverdue)
	}
}

func TestListInvoices_EmbedsOverdueState(t *testing.T) {
	svc, invoiceRepo, patientRepo := newTestBillingService()
	patient := seedPatient(patientRepo)

	invoiceRepo.Create(context.Background(), &entity.Invoice{
		InvoiceNo: "INV-20250101-0005",
		PatientID: patient.ID,
		Status:    enum.InvoiceStatusPending,
		Total:     10000,
		Balance:   10000,
		DueDate:   time.Now().Add(-30 * time.Hour),
	})

	result, err := svc.ListInvoices(context.Background(), &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 invoice, got %d", len(result.Items))
	}
	// The lazy sweep runs before listing, so the invoice reads as overdue.
	if result.Items[0].Status != enum.InvoiceStatusOverdue {
		t.Errorf("expected overdue status, got %s", result.Items[0].Status)
	}
	if !result.Items[0].IsOverdue || result.Items[0].DaysOverdue != 2 {
		t.Errorf("expected 2 days overdue, got %v/%d", result.Items[0].IsOverdue, result.Items[0].DaysOverdue)
	}
}
