package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus int

const (
	InvoiceStatusDraft InvoiceStatus = iota
	InvoiceStatusPending
	InvoiceStatusPaid
	InvoiceStatusPartiallyPaid
	InvoiceStatusOverdue
	InvoiceStatusCancelled
)

var invoiceStatusNames = [...]string{
	"draft", "pending", "paid", "partially_paid", "overdue", "cancelled",
}

func (s InvoiceStatus) String() string {
	if s < 0 || int(s) >= len(invoiceStatusNames) {
		return "unknown"
	}
	return invoiceStatusNames[s]
}

// IsSettleable reports whether payments may still be applied to the invoice.
func (s InvoiceStatus) IsSettleable() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPartiallyPaid || s == InvoiceStatusOverdue
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	for i, name := range invoiceStatusNames {
		if name == str {
			*s = InvoiceStatus(i)
			return nil
		}
	}
	return nil
}

// ParseInvoiceStatus parses a wire string into an InvoiceStatus.
func ParseInvoiceStatus(str string) (InvoiceStatus, bool) {
	for i, name := range invoiceStatusNames {
		if name == str {
			return InvoiceStatus(i), true
		}
	}
	return InvoiceStatusDraft, false
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
