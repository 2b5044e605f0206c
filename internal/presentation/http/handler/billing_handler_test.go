package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/application/service"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
}

func (m *stubInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	m.invoices[inv.ID] = inv
	return nil
}

func (m *stubInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m *stubInvoiceRepo) GetByInvoiceNo(_ context.Context, _ string) (*entity.Invoice, error) {
	return nil, nil
}

func (m *stubInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	m.invoices[inv.ID] = inv
	return nil
}

func (m *stubInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.invoices, id)
	return nil
}

func (m *stubInvoiceRepo) List(_ context.Context, _ *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return nil, 0, nil
}

func (m *stubInvoiceRepo) ListAll(_ context.Context) ([]entity.Invoice, error) {
	return nil, nil
}

func (m *stubInvoiceRepo) RecordPayment(_ context.Context, inv *entity.Invoice, _ *entity.Payment) error {
	m.invoices[inv.ID] = inv
	return nil
}

func (m *stubInvoiceRepo) MarkOverdue(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (m *stubInvoiceRepo) CountForDay(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func newInvoiceReadRouter(invoiceRepo *stubInvoiceRepo, scopedPatientID *uuid.UUID) *gin.Engine {
	billingService := service.NewBillingService(invoiceRepo, nil, nil, nil, nil, nil, nil)
	h := NewBillingHandler(billingService, nil)

	router := gin.New()
	router.GET("/invoices/:id", func(c *gin.Context) {
		if scopedPatientID != nil {
			c.Set("patient_id", *scopedPatientID)
		}
	}, h.Get)
	return router
}

func TestBillingGet_PatientReadsOwnInvoice(t *testing.T) {
	invoiceRepo := newStubInvoiceRepo()
	patientID := uuid.New()
	invoice := &entity.Invoice{
		InvoiceNo: "INV-20250101-0001",
		PatientID: patientID,
		Status:    enum.InvoiceStatusPending,
		Total:     10000,
		Balance:   10000,
		DueDate:   time.Now().AddDate(0, 0, 7),
	}
	invoiceRepo.Create(context.Background(), invoice)

	router := newInvoiceReadRouter(invoiceRepo, &patientID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/invoices/"+invoice.ID.String(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"is_overdue":false`) {
		t.Errorf("expected derived overdue state in response, got %s", w.Body.String())
	}
}

func TestBillingGet_PatientBlockedFromForeignInvoice(t *testing.T) {
	invoiceRepo := newStubInvoiceRepo()
	invoice := &entity.Invoice{
		InvoiceNo: "INV-20250101-0002",
		PatientID: uuid.New(),
		Status:    enum.InvoiceStatusPending,
		Total:     10000,
		Balance:   10000,
		DueDate:   time.Now().AddDate(0, 0, 7),
	}
	invoiceRepo.Create(context.Background(), invoice)

	otherPatient := uuid.New()
	router := newInvoiceReadRouter(invoiceRepo, &otherPatient)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/invoices/"+invoice.ID.String(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for another patient's invoice, got %d", w.Code)
	}
}

func TestBillingGet_StaffUnscoped(t *testing.T) {
	invoiceRepo := newStubInvoiceRepo()
	invoice := &entity.Invoice{
		InvoiceNo: "INV-20250101-0003",
		PatientID: uuid.New(),
		Status:    enum.InvoiceStatusOverdue,
		Total:     10000,
		Balance:   10000,
		DueDate:   time.Now().Add(-30 * time.Hour),
	}
	invoiceRepo.Create(context.Background(), invoice)

	router := newInvoiceReadRouter(invoiceRepo, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/invoices/"+invoice.ID.String(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"is_overdue":true`) || !strings.Contains(w.Body.String(), `"days_overdue":2`) {
		t.Errorf("expected overdue fields in response, got %s", w.Body.String())
	}
}
