package billing

import (
	"testing"
	"time"

	"github.com/medicore/hms-api/internal/domain/enum"
)

func TestTotals(t *testing.T) {
	tests := []struct {
		name        string
		items       []LineAmount
		discountPct float64
		taxPct      float64
		want        Breakdown
	}{
		{
			name: "consultation plus test with discount and tax",
			items: []LineAmount{
				{Quantity: 2, UnitPrice: 50000},
				{Quantity: 1, UnitPrice: 150000},
			},
			discountPct: 10,
			taxPct:      5,
			want:        Breakdown{SubTotal: 250000, Discount: 25000, Tax: 11250, Total: 236250},
		},
		{
			name:  "no items",
			items: nil,
			want:  Breakdown{},
		},
		{
			name:        "zero percentages",
			items:       []LineAmount{{Quantity: 3, UnitPrice: 1999}},
			discountPct: 0,
			taxPct:      0,
			want:        Breakdown{SubTotal: 5997, Discount: 0, Tax: 0, Total: 5997},
		},
		{
			name:        "full discount",
			items:       []LineAmount{{Quantity: 1, UnitPrice: 10000}},
			discountPct: 100,
			taxPct:      18,
			want:        Breakdown{SubTotal: 10000, Discount: 10000, Tax: 0, Total: 0},
		},
		{
			name:        "fractional cent rounds half away from zero",
			items:       []LineAmount{{Quantity: 1, UnitPrice: 101}},
			discountPct: 0,
			taxPct:      5, // 5.05 cents -> 5
			want:        Breakdown{SubTotal: 101, Discount: 0, Tax: 5, Total: 106},
		},
		{
			name:        "zero quantity line contributes nothing",
			items:       []LineAmount{{Quantity: 0, UnitPrice: 99999}, {Quantity: 1, UnitPrice: 100}},
			discountPct: 0,
			taxPct:      0,
			want:        Breakdown{SubTotal: 100, Discount: 0, Tax: 0, Total: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Totals(tt.items, tt.discountPct, tt.taxPct)
			if got != tt.want {
				t.Errorf("Totals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTotalsInvariant(t *testing.T) {
	cases := []struct {
		items       []LineAmount
		discountPct float64
		taxPct      float64
	}{
		{[]LineAmount{{2, 500}, {5, 12345}, {1, 1}}, 12.5, 18},
		{[]LineAmount{{1, 1}}, 99.9, 0.1},
		{[]LineAmount{{100, 100000}}, 0, 100},
		{[]LineAmount{{7, 333}}, 33.33, 7.77},
	}

	for _, c := range cases {
		b := Totals(c.items, c.discountPct, c.taxPct)
		if b.Total != b.SubTotal-b.Discount+b.Tax {
			t.Errorf("total %d != subtotal %d - discount %d + tax %d", b.Total, b.SubTotal, b.Discount, b.Tax)
		}
		if b.Total < 0 {
			t.Errorf("total = %d, want non-negative", b.Total)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		status  enum.InvoiceStatus
		dueDate time.Time
		want    bool
	}{
		{"pending past due", enum.InvoiceStatusPending, yesterday, true},
		{"pending not yet due", enum.InvoiceStatusPending, tomorrow, false},
		{"paid past due is never overdue", enum.InvoiceStatusPaid, yesterday, false},
		{"cancelled past due is never overdue", enum.InvoiceStatusCancelled, yesterday, false},
		{"partially paid past due", enum.InvoiceStatusPartiallyPaid, yesterday, true},
		{"due date boundary is not overdue", enum.InvoiceStatusPending, now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.status, tt.dueDate, now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate time.Time
		want    int
	}{
		{"one day late", now.AddDate(0, 0, -1), 1},
		{"half day late rounds up", now.Add(-12 * time.Hour), 1},
		{"ten days late", now.AddDate(0, 0, -10), 10},
		{"not yet due clamps to zero", now.AddDate(0, 0, 5), 0},
		{"exactly due", now, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysOverdue(tt.dueDate, now); got != tt.want {
				t.Errorf("DaysOverdue() = %d, want %d", got, tt.want)
			}
		})
	}
}
