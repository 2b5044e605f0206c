// Package stats reduces in-memory entity collections into dashboard
// summaries and filtered subsets. Every function is pure: inputs are never
// mutated and repeated calls are safe.
package stats

import (
	"time"

	"github.com/medicore/hms-api/internal/domain/billing"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/inventory"
)

// PatientSummary aggregates a patient collection for dashboard cards.
// Gender and status are independent partitions of the same set.
type PatientSummary struct {
	Total     int     `json:"total"`
	Male      int     `json:"male"`
	Female    int     `json:"female"`
	Other     int     `json:"other"`
	Active    int     `json:"active"`
	Inactive  int     `json:"inactive"`
	Deceased  int     `json:"deceased"`
	MalePct   float64 `json:"male_pct"`
	FemalePct float64 `json:"female_pct"`
}

// SummarizePatients reduces a patient collection into counts.
func SummarizePatients(patients []entity.Patient) PatientSummary {
	s := PatientSummary{Total: len(patients)}
	for i := range patients {
		switch patients[i].Gender {
		case enum.GenderMale:
			s.Male++
		case enum.GenderFemale:
			s.Female++
		default:
			s.Other++
		}
		switch patients[i].Status {
		case enum.PatientStatusActive:
			s.Active++
		case enum.PatientStatusInactive:
			s.Inactive++
		case enum.PatientStatusDeceased:
			s.Deceased++
		}
	}
	s.MalePct = pct(s.Male, s.Total)
	s.FemalePct = pct(s.Female, s.Total)
	return s
}

// AppointmentSummary aggregates an appointment collection.
type AppointmentSummary struct {
	Total      int `json:"total"`
	Scheduled  int `json:"scheduled"`
	Confirmed  int `json:"confirmed"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	NoShow     int `json:"no_show"`
	Today      int `json:"today"`
}

// SummarizeAppointments reduces an appointment collection into counts.
func SummarizeAppointments(appointments []entity.Appointment, now time.Time) AppointmentSummary {
	s := AppointmentSummary{Total: len(appointments)}
	y, m, d := now.Date()
	for i := range appointments {
		switch appointments[i].Status {
		case enum.AppointmentStatusScheduled:
			s.Scheduled++
		case enum.AppointmentStatusConfirmed:
			s.Confirmed++
		case enum.AppointmentStatusInProgress:
			s.InProgress++
		case enum.AppointmentStatusCompleted:
			s.Completed++
		case enum.AppointmentStatusCancelled:
			s.Cancelled++
		case enum.AppointmentStatusNoShow:
			s.NoShow++
		}
		ay, am, ad := appointments[i].ScheduledAt.Date()
		if ay == y && am == m && ad == d {
			s.Today++
		}
	}
	return s
}

// VisitSummary aggregates a visit collection.
type VisitSummary struct {
	Total            int     `json:"total"`
	Admitted         int     `json:"admitted"`
	UnderObservation int     `json:"under_observation"`
	Discharged       int     `json:"discharged"`
	Transferred      int     `json:"transferred"`
	Inpatient        int     `json:"inpatient"`
	Emergency        int     `json:"emergency"`
	AvgStayDays      float64 `json:"avg_stay_days"`
}

// SummarizeVisits reduces a visit collection into counts and an average
// length of stay over closed visits.
func SummarizeVisits(visits []entity.Visit, now time.Time) VisitSummary {
	s := VisitSummary{Total: len(visits)}
	var stayDays, closed int
	for i := range visits {
		v := &visits[i]
		switch v.Status {
		case enum.VisitStatusAdmitted:
			s.Admitted++
		case enum.VisitStatusUnderObservation:
			s.UnderObservation++
		case enum.VisitStatusDischarged:
			s.Discharged++
		case enum.VisitStatusTransferred:
			s.Transferred++
		}
		switch v.Type {
		case enum.VisitTypeIPD:
			s.Inpatient++
		case enum.VisitTypeEmergency:
			s.Emergency++
		}
		if v.Status.IsClosed() {
			stayDays += v.LengthOfStay(now)
			closed++
		}
	}
	if closed > 0 {
		s.AvgStayDays = float64(stayDays) / float64(closed)
	}
	return s
}

// InventorySummary aggregates a medicine collection by derived stock status.
type InventorySummary struct {
	Total        int     `json:"total"`
	Available    int     `json:"available"`
	LowStock     int     `json:"low_stock"`
	ExpiringSoon int     `json:"expiring_soon"`
	OutOfStock   int     `json:"out_of_stock"`
	Expired      int     `json:"expired"`
	StockValue   float64 `json:"stock_value"`
}

// SummarizeMedicines reduces a medicine collection into per-status counts
// and the total stock value. Status is recomputed per medicine, never read
// from a stored copy.
func SummarizeMedicines(medicines []entity.Medicine, window time.Duration, now time.Time) InventorySummary {
	s := InventorySummary{Total: len(medicines)}
	var valueCents int64
	for i := range medicines {
		m := &medicines[i]
		switch inventory.Classify(m.Quantity, m.MinThreshold, m.ExpiryDate, window, now) {
		case enum.StockStatusAvailable:
			s.Available++
		case enum.StockStatusLowStock:
			s.LowStock++
		case enum.StockStatusExpiringSoon:
			s.ExpiringSoon++
		case enum.StockStatusOutOfStock:
			s.OutOfStock++
		case enum.StockStatusExpired:
			s.Expired++
		}
		valueCents += m.StockValue()
	}
	s.StockValue = float64(valueCents) / 100
	return s
}

// BillingSummary aggregates an invoice collection.
type BillingSummary struct {
	Total         int     `json:"total"`
	Draft         int     `json:"draft"`
	Pending       int     `json:"pending"`
	Paid          int     `json:"paid"`
	PartiallyPaid int     `json:"partially_paid"`
	Overdue       int     `json:"overdue"`
	Cancelled     int     `json:"cancelled"`
	OverdueNow    int     `json:"overdue_now"`
	Billed        float64 `json:"billed"`
	Collected     float64 `json:"collected"`
	Outstanding   float64 `json:"outstanding"`
}

// SummarizeInvoices reduces an invoice collection into per-status counts
// and billed/collected/outstanding totals. Cancelled invoices are excluded
// from the monetary totals. OverdueNow is derived from due dates rather
// than the stored status.
func SummarizeInvoices(invoices []entity.Invoice, now time.Time) BillingSummary {
	s := BillingSummary{Total: len(invoices)}
	var billed, collected, outstanding int64
	for i := range invoices {
		inv := &invoices[i]
		switch inv.Status {
		case enum.InvoiceStatusDraft:
			s.Draft++
		case enum.InvoiceStatusPending:
			s.Pending++
		case enum.InvoiceStatusPaid:
			s.Paid++
		case enum.InvoiceStatusPartiallyPaid:
			s.PartiallyPaid++
		case enum.InvoiceStatusOverdue:
			s.Overdue++
		case enum.InvoiceStatusCancelled:
			s.Cancelled++
		}
		if billing.IsOverdue(inv.Status, inv.DueDate, now) {
			s.OverdueNow++
		}
		if inv.Status != enum.InvoiceStatusCancelled {
			billed += inv.Total
			collected += inv.Paid
			outstanding += inv.Balance
		}
	}
	s.Billed = float64(billed) / 100
	s.Collected = float64(collected) / 100
	s.Outstanding = float64(outstanding) / 100
	return s
}

// pct returns part/total as a percentage, reporting 0 for an empty total.
func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
