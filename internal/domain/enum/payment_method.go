package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a payment was made
type PaymentMethod int

const (
	PaymentMethodCash PaymentMethod = iota
	PaymentMethodCard
	PaymentMethodUPI
	PaymentMethodNetBanking
	PaymentMethodInsurance
	PaymentMethodCheque
)

var paymentMethodNames = [...]string{
	"cash", "card", "upi", "net_banking", "insurance", "cheque",
}

func (m PaymentMethod) String() string {
	if m < 0 || int(m) >= len(paymentMethodNames) {
		return "unknown"
	}
	return paymentMethodNames[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	for i, name := range paymentMethodNames {
		if name == str {
			*m = PaymentMethod(i)
			return nil
		}
	}
	return nil
}

// ParsePaymentMethod parses a wire string into a PaymentMethod.
func ParsePaymentMethod(str string) (PaymentMethod, bool) {
	for i, name := range paymentMethodNames {
		if name == str {
			return PaymentMethod(i), true
		}
	}
	return PaymentMethodCash, false
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
