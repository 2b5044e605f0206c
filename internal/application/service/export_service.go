package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/billing"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/internal/domain/stats"
	"github.com/xuri/excelize/v2"
)

// ExportService streams xlsx workbooks of the hospital registers
type ExportService struct {
	patientRepo repository.PatientRepository
	invoiceRepo repository.InvoiceRepository
}

// NewExportService creates a new export service
func NewExportService(patientRepo repository.PatientRepository, invoiceRepo repository.InvoiceRepository) *ExportService {
	return &ExportService{patientRepo: patientRepo, invoiceRepo: invoiceRepo}
}

// ExportFileName builds the attachment name for a register export
func ExportFileName(register string) string {
	return fmt.Sprintf("%s_%s.xlsx", register, time.Now().Format("20060102_150405"))
}

// ExportPatients writes the filtered patient register as an xlsx workbook
func (s *ExportService) ExportPatients(ctx context.Context, filter stats.PatientFilter, w io.Writer) error {
	patients, err := s.patientRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	patients = stats.FilterPatients(patients, filter, now)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Patients"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Patient No", "Name", "Gender", "Date of Birth", "Age", "Blood Group", "Phone", "Email", "Status", "Registered"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i := range patients {
		p := &patients[i]
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.PatientNo)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.FullName())
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.Gender.String())
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.DateOfBirth.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.Age(now))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), deref(p.BloodGroup))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), deref(p.Phone))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), deref(p.Email))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), p.Status.String())
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), p.CreatedAt.Format("2006-01-02"))
	}

	return f.Write(w)
}

// ExportInvoices writes the filtered invoice register as an xlsx workbook
func (s *ExportService) ExportInvoices(ctx context.Context, filter stats.InvoiceFilter, w io.Writer) error {
	invoices, err := s.invoiceRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	invoices = stats.FilterInvoices(invoices, filter, now)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Invoices"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Invoice No", "Patient", "Status", "Sub Total", "Discount", "Tax", "Total", "Paid", "Balance", "Due Date", "Days Overdue", "Issued"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i := range invoices {
		inv := &invoices[i]
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), inv.InvoiceNo)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), invoicePatientName(inv))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), inv.Status.String())
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), cents(inv.SubTotal))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), cents(inv.Discount))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), cents(inv.Tax))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), cents(inv.Total))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), cents(inv.Paid))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), cents(inv.Balance))
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), inv.DueDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), overdueDays(inv, now))
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), inv.CreatedAt.Format("2006-01-02"))
	}

	return f.Write(w)
}

func invoicePatientName(inv *entity.Invoice) string {
	if inv.Patient.ID == uuid.Nil {
		return ""
	}
	return inv.Patient.FullName()
}

func overdueDays(inv *entity.Invoice, now time.Time) int {
	if !billing.IsOverdue(inv.Status, inv.DueDate, now) {
		return 0
	}
	return billing.DaysOverdue(inv.DueDate, now)
}

func cents(v int64) float64 {
	return float64(v) / 100
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
