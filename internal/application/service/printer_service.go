package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/pkg/apperror"
	"github.com/medicore/hms-api/pkg/printer"
)

const receiptCharWidth = 42

// PrinterService handles receipt formatting and thermal printing
type PrinterService struct {
	printer      printer.Printer
	invoiceRepo  repository.InvoiceRepository
	patientRepo  repository.PatientRepository
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	printerType  string
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	invoiceRepo repository.InvoiceRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	printerType string,
) *PrinterService {
	return &PrinterService{
		printer:      p,
		invoiceRepo:  invoiceRepo,
		patientRepo:  patientRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		printerType:  printerType,
	}
}

// PrinterStatus returns the current printer status information
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt so the handler can return it as JSON when printing is disabled.
func (s *PrinterService) TestPrint() (*printer.Receipt, error) {
	receipt := &printer.Receipt{
		HospitalName: "PRINTER TEST",
		Address:      "Test Address",
		Phone:        "+91 00000 00000",
		InvoiceNo:    "TEST-001",
		PatientName:  "Test Patient",
		PatientNo:    "PAT-TEST",
		Items: []printer.ReceiptItem{
			{Description: "Consultation", Quantity: 1, Total: 50000},
			{Description: "Test Item", Quantity: 2, Total: 20000},
		},
		SubTotal:    70000,
		Total:       70000,
		Paid:        70000,
		Currency:    "INR",
		CashierName: "System",
		PrintedAt:   time.Now(),
	}

	if err := s.printer.Print(receipt.Render(receiptCharWidth)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintInvoiceReceipt fetches an invoice and prints its counter receipt
func (s *PrinterService) PrintInvoiceReceipt(ctx context.Context, invoiceID, cashierID uuid.UUID) (*printer.Receipt, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &printer.Receipt{
		HospitalName: settings.HospitalName,
		InvoiceNo:    invoice.InvoiceNo,
		SubTotal:     invoice.SubTotal,
		Discount:     invoice.Discount,
		Tax:          invoice.Tax,
		Total:        invoice.Total,
		Paid:         invoice.Paid,
		Balance:      invoice.Balance,
		Currency:     settings.Currency,
		PrintedAt:    time.Now(),
	}
	if settings.Address != nil {
		receipt.Address = *settings.Address
	}
	if settings.Phone != nil {
		receipt.Phone = *settings.Phone
	}

	patient, err := s.patientRepo.GetByID(ctx, invoice.PatientID)
	if err == nil && patient != nil {
		receipt.PatientName = patient.FullName()
		receipt.PatientNo = patient.PatientNo
	}

	cashier, err := s.userRepo.GetByID(ctx, cashierID)
	if err == nil && cashier != nil {
		receipt.CashierName = cashier.FullName()
	}

	for _, item := range invoice.Items {
		receipt.Items = append(receipt.Items, printer.ReceiptItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Total:       item.Total,
		})
	}

	if err := s.printer.Print(receipt.Render(receiptCharWidth)); err != nil {
		return receipt, fmt.Errorf("receipt print failed: %w", err)
	}
	return receipt, nil
}
