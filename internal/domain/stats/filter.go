package stats

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/billing"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/inventory"
)

// Filter semantics, shared by every Filter* function: an unset field, empty
// string, or the "all" sentinel matches everything on that dimension; set
// dimensions combine with AND; text search is a case-insensitive substring
// match over the entity's display fields; range bounds are inclusive and a
// nil bound is unbounded on that side. Input order is preserved and the
// input slice is never mutated. Pagination is not applied here.

// PatientFilter selects a subset of a patient collection.
type PatientFilter struct {
	Search    string
	Gender    string
	Status    string
	MinAge    *int
	MaxAge    *int
	AddedFrom *time.Time
	AddedTo   *time.Time
}

// FilterPatients returns the patients matching every set dimension.
func FilterPatients(patients []entity.Patient, f PatientFilter, now time.Time) []entity.Patient {
	out := make([]entity.Patient, 0, len(patients))
	for i := range patients {
		p := &patients[i]
		if !matchText(f.Search, p.FirstName, p.LastName, p.FullName(), p.PatientNo, deref(p.Email), deref(p.Phone)) {
			continue
		}
		if !matchDim(f.Gender, p.Gender.String()) {
			continue
		}
		if !matchDim(f.Status, p.Status.String()) {
			continue
		}
		age := p.Age(now)
		if f.MinAge != nil && age < *f.MinAge {
			continue
		}
		if f.MaxAge != nil && age > *f.MaxAge {
			continue
		}
		if !matchDateRange(p.CreatedAt, f.AddedFrom, f.AddedTo) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// InvoiceFilter selects a subset of an invoice collection.
type InvoiceFilter struct {
	Search      string
	Status      string
	PatientID   *uuid.UUID
	OverdueOnly bool
	MinTotal    *float64
	MaxTotal    *float64
	IssuedFrom  *time.Time
	IssuedTo    *time.Time
}

// FilterInvoices returns the invoices matching every set dimension.
func FilterInvoices(invoices []entity.Invoice, f InvoiceFilter, now time.Time) []entity.Invoice {
	out := make([]entity.Invoice, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if !matchText(f.Search, inv.InvoiceNo, inv.Patient.FullName(), inv.Patient.PatientNo) {
			continue
		}
		if !matchDim(f.Status, inv.Status.String()) {
			continue
		}
		if f.PatientID != nil && inv.PatientID != *f.PatientID {
			continue
		}
		if f.OverdueOnly && !billing.IsOverdue(inv.Status, inv.DueDate, now) {
			continue
		}
		total := float64(inv.Total) / 100
		if f.MinTotal != nil && total < *f.MinTotal {
			continue
		}
		if f.MaxTotal != nil && total > *f.MaxTotal {
			continue
		}
		if !matchDateRange(inv.CreatedAt, f.IssuedFrom, f.IssuedTo) {
			continue
		}
		out = append(out, *inv)
	}
	return out
}

// MedicineFilter selects a subset of a medicine collection. Status filters
// on the derived stock status.
type MedicineFilter struct {
	Search   string
	Category string
	Status   string
	Window   time.Duration
}

// FilterMedicines returns the medicines matching every set dimension.
func FilterMedicines(medicines []entity.Medicine, f MedicineFilter, now time.Time) []entity.Medicine {
	window := f.Window
	if window == 0 {
		window = inventory.DefaultExpiryWindow
	}
	out := make([]entity.Medicine, 0, len(medicines))
	for i := range medicines {
		m := &medicines[i]
		if !matchText(f.Search, m.Name, m.Code, deref(m.GenericName), deref(m.Manufacturer)) {
			continue
		}
		if !matchDim(f.Category, deref(m.Category)) {
			continue
		}
		status := inventory.Classify(m.Quantity, m.MinThreshold, m.ExpiryDate, window, now)
		if !matchDim(f.Status, status.String()) {
			continue
		}
		out = append(out, *m)
	}
	return out
}

// Paginate slices a filtered collection into the requested page.
// Page numbering starts at 1; out-of-range pages return an empty slice.
func Paginate[T any](items []T, page, perPage int) []T {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func matchText(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchDim(want, have string) bool {
	return want == "" || want == "all" || strings.EqualFold(want, have)
}

func matchDateRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
