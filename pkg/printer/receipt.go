package printer

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/divan/num2words"
)

// ReceiptItem is one line on a printed bill
type ReceiptItem struct {
	Description string
	Quantity    int
	Total       int64 // cents
}

// Receipt holds everything needed to print a counter receipt for an invoice
type Receipt struct {
	HospitalName string
	Address      string
	Phone        string
	InvoiceNo    string
	PatientName  string
	PatientNo    string
	Items        []ReceiptItem
	SubTotal     int64 // cents
	Discount     int64
	Tax          int64
	Total        int64
	Paid         int64
	Balance      int64
	Currency     string
	CashierName  string
	PrintedAt    time.Time
}

// Money formats cents as a decimal with the receipt currency
func (r *Receipt) Money(cents int64) string {
	return fmt.Sprintf("%s %.2f", r.Currency, float64(cents)/100)
}

// AmountInWords spells out the total for the signature line.
// Fractional cents are dropped; receipts follow the whole-unit convention.
func (r *Receipt) AmountInWords() string {
	words := num2words.ConvertAnd(int(r.Total / 100))
	return titleWords(words) + " Only"
}

// titleWords uppercases the first letter of each word. num2words output is
// plain ASCII, so a rune-level swap is enough.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Render builds the ESC/POS byte stream for the receipt
func (r *Receipt) Render(charWidth int) []byte {
	doc := NewDocument(charWidth)

	doc.SetAlign(AlignCenter).
		SetFontSize(FontDouble).
		Text(r.HospitalName).
		SetFontSize(FontNormal)
	if r.Address != "" {
		doc.Text(r.Address)
	}
	if r.Phone != "" {
		doc.Text("Tel: " + r.Phone)
	}
	doc.LineFeed()

	doc.SetAlign(AlignLeft).
		Separator('=').
		KeyValue("Invoice", r.InvoiceNo).
		KeyValue("Patient", r.PatientName).
		KeyValue("Patient No", r.PatientNo).
		KeyValue("Date", r.PrintedAt.Format("02/01/2006 15:04")).
		Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Description, r.Money(item.Total))
	}

	doc.Separator('-').
		KeyValue("Subtotal", r.Money(r.SubTotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount", "-"+r.Money(r.Discount))
	}
	if r.Tax > 0 {
		doc.KeyValue("Tax", r.Money(r.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL", r.Money(r.Total)).
		SetBold(false).
		KeyValue("Paid", r.Money(r.Paid)).
		KeyValue("Balance", r.Money(r.Balance)).
		Separator('=')

	doc.SetAlign(AlignCenter).
		Text(r.AmountInWords()).
		LineFeed()
	if r.CashierName != "" {
		doc.Text("Served by: " + r.CashierName)
	}
	doc.Text("Get well soon!").
		FeedLines(3).
		Cut()

	return doc.Bytes()
}
