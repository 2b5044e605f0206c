package billing

import (
	"time"

	"github.com/medicore/hms-api/internal/domain/enum"
)

// IsOverdue reports whether an invoice is past its due date, independent of
// the stored status field. Paid and cancelled invoices are never overdue.
// The due-date boundary itself is not overdue.
func IsOverdue(status enum.InvoiceStatus, dueDate, now time.Time) bool {
	if status == enum.InvoiceStatusPaid || status == enum.InvoiceStatusCancelled {
		return false
	}
	return now.After(dueDate)
}

// DaysOverdue returns how many days past due an invoice is, rounding any
// partial day up. Invoices not yet due report 0.
func DaysOverdue(dueDate, now time.Time) int {
	if !now.After(dueDate) {
		return 0
	}
	elapsed := now.Sub(dueDate)
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) != 0 {
		days++
	}
	return days
}
