// Package billing holds the pure monetary calculations behind invoicing.
// All arithmetic is fixed-point over int64 cents; percentage application
// rounds half away from zero to the nearest cent.
package billing

import "math"

// LineAmount is the quantity/price pair of a single invoice line.
type LineAmount struct {
	Quantity  int
	UnitPrice int64 // cents
}

// Breakdown is the authoritative monetary breakdown of an invoice.
type Breakdown struct {
	SubTotal int64 // cents
	Discount int64 // cents
	Tax      int64 // cents
	Total    int64 // cents
}

// Totals computes the invoice breakdown from line items and discount/tax
// percentages:
//
//	subtotal = Σ quantity*unitPrice
//	discount = subtotal * discountPct / 100
//	tax      = (subtotal - discount) * taxPct / 100
//	total    = subtotal - discount + tax
//
// Inputs are not validated; out-of-range percentages are the caller's
// responsibility.
func Totals(items []LineAmount, discountPct, taxPct float64) Breakdown {
	var subTotal int64
	for _, item := range items {
		subTotal += int64(item.Quantity) * item.UnitPrice
	}

	discount := applyPct(subTotal, discountPct)
	taxable := subTotal - discount
	tax := applyPct(taxable, taxPct)

	return Breakdown{
		SubTotal: subTotal,
		Discount: discount,
		Tax:      tax,
		Total:    taxable + tax,
	}
}

// applyPct returns pct percent of amount, rounded half away from zero.
func applyPct(amount int64, pct float64) int64 {
	return int64(math.Round(float64(amount) * pct / 100))
}
