package stats

import (
	"testing"
	"time"

	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/inventory"
)

func TestSummarizePatients(t *testing.T) {
	patients := []entity.Patient{
		{Gender: enum.GenderMale, Status: enum.PatientStatusActive},
		{Gender: enum.GenderMale, Status: enum.PatientStatusInactive},
		{Gender: enum.GenderFemale, Status: enum.PatientStatusActive},
	}

	s := SummarizePatients(patients)

	if s.Total != 3 {
		t.Errorf("Total = %d, want 3", s.Total)
	}
	if s.Male != 2 || s.Female != 1 || s.Other != 0 {
		t.Errorf("gender split = %d/%d/%d, want 2/1/0", s.Male, s.Female, s.Other)
	}
	if s.Active != 2 || s.Inactive != 1 {
		t.Errorf("status split = %d/%d, want 2/1", s.Active, s.Inactive)
	}
	if s.MalePct < 66.6 || s.MalePct > 66.7 {
		t.Errorf("MalePct = %f, want ~66.67", s.MalePct)
	}
}

func TestSummarizePatientsEmpty(t *testing.T) {
	s := SummarizePatients(nil)
	if s.Total != 0 {
		t.Errorf("Total = %d, want 0", s.Total)
	}
	if s.MalePct != 0 || s.FemalePct != 0 {
		t.Errorf("percentages = %f/%f, want 0/0 for empty collection", s.MalePct, s.FemalePct)
	}
}

func TestSummarizeInvoices(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	invoices := []entity.Invoice{
		{Status: enum.InvoiceStatusPaid, Total: 100000, Paid: 100000, Balance: 0, DueDate: now.AddDate(0, 0, -5)},
		{Status: enum.InvoiceStatusPending, Total: 50000, Paid: 0, Balance: 50000, DueDate: now.AddDate(0, 0, -1)},
		{Status: enum.InvoiceStatusPartiallyPaid, Total: 20000, Paid: 5000, Balance: 15000, DueDate: now.AddDate(0, 0, 7)},
		{Status: enum.InvoiceStatusCancelled, Total: 99900, Paid: 0, Balance: 99900, DueDate: now.AddDate(0, 0, -30)},
	}

	s := SummarizeInvoices(invoices, now)

	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.Paid != 1 || s.Pending != 1 || s.PartiallyPaid != 1 || s.Cancelled != 1 {
		t.Errorf("status counts = paid %d pending %d partial %d cancelled %d", s.Paid, s.Pending, s.PartiallyPaid, s.Cancelled)
	}
	// Only the pending invoice is past due; paid and cancelled never count.
	if s.OverdueNow != 1 {
		t.Errorf("OverdueNow = %d, want 1", s.OverdueNow)
	}
	// Cancelled invoices are excluded from monetary totals.
	if s.Billed != 1700 {
		t.Errorf("Billed = %f, want 1700", s.Billed)
	}
	if s.Collected != 1050 {
		t.Errorf("Collected = %f, want 1050", s.Collected)
	}
	if s.Outstanding != 650 {
		t.Errorf("Outstanding = %f, want 650", s.Outstanding)
	}
}

func TestSummarizeMedicinesUsesDerivedStatus(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	medicines := []entity.Medicine{
		{Quantity: 100, MinThreshold: 10, ExpiryDate: now.AddDate(1, 0, 0), UnitPrice: 500},
		{Quantity: 0, MinThreshold: 10, ExpiryDate: now.AddDate(1, 0, 0), UnitPrice: 1000},
		{Quantity: 5, MinThreshold: 10, ExpiryDate: now.AddDate(0, 0, -1), UnitPrice: 200},
		{Quantity: 50, MinThreshold: 10, ExpiryDate: now.AddDate(0, 0, 15), UnitPrice: 100},
	}

	s := SummarizeMedicines(medicines, inventory.DefaultExpiryWindow, now)

	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.Available != 1 || s.OutOfStock != 1 || s.Expired != 1 || s.ExpiringSoon != 1 {
		t.Errorf("counts = avail %d out %d expired %d soon %d, want 1 each",
			s.Available, s.OutOfStock, s.Expired, s.ExpiringSoon)
	}
	// 100*5.00 + 0 + 5*2.00 + 50*1.00
	if s.StockValue != 560 {
		t.Errorf("StockValue = %f, want 560", s.StockValue)
	}
}

func TestSummarizeVisits(t *testing.T) {
	now := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	d1 := now.AddDate(0, 0, -3)
	visits := []entity.Visit{
		{Status: enum.VisitStatusAdmitted, Type: enum.VisitTypeIPD, AdmittedAt: now.AddDate(0, 0, -2)},
		{Status: enum.VisitStatusDischarged, Type: enum.VisitTypeIPD, AdmittedAt: now.AddDate(0, 0, -7), DischargedAt: &d1},
		{Status: enum.VisitStatusUnderObservation, Type: enum.VisitTypeEmergency, AdmittedAt: now},
	}

	s := SummarizeVisits(visits, now)

	if s.Total != 3 || s.Admitted != 1 || s.Discharged != 1 || s.UnderObservation != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.Inpatient != 2 || s.Emergency != 1 {
		t.Errorf("type split = ipd %d emergency %d, want 2/1", s.Inpatient, s.Emergency)
	}
	if s.AvgStayDays != 4 {
		t.Errorf("AvgStayDays = %f, want 4", s.AvgStayDays)
	}
}

func TestSummaryTotalsMatchInputLength(t *testing.T) {
	now := time.Now()
	for _, n := range []int{0, 1, 17} {
		patients := make([]entity.Patient, n)
		if got := SummarizePatients(patients).Total; got != n {
			t.Errorf("SummarizePatients total = %d, want %d", got, n)
		}
		invoices := make([]entity.Invoice, n)
		if got := SummarizeInvoices(invoices, now).Total; got != n {
			t.Errorf("SummarizeInvoices total = %d, want %d", got, n)
		}
		visits := make([]entity.Visit, n)
		if got := SummarizeVisits(visits, now).Total; got != n {
			t.Errorf("SummarizeVisits total = %d, want %d", got, n)
		}
	}
}
