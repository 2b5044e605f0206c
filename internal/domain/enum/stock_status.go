package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// StockStatus is the derived availability classification of a medicine.
// It is recomputed on every read and never treated as authoritative when stored.
type StockStatus int

const (
	StockStatusAvailable StockStatus = iota
	StockStatusLowStock
	StockStatusExpiringSoon
	StockStatusOutOfStock
	StockStatusExpired
)

var stockStatusNames = [...]string{
	"available", "low_stock", "expiring_soon", "out_of_stock", "expired",
}

func (s StockStatus) String() string {
	if s < 0 || int(s) >= len(stockStatusNames) {
		return "unknown"
	}
	return stockStatusNames[s]
}

func (s StockStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StockStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = StockStatus(i)
		return nil
	}
	for i, name := range stockStatusNames {
		if name == str {
			*s = StockStatus(i)
			return nil
		}
	}
	return nil
}

func (s StockStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *StockStatus) Scan(value interface{}) error {
	if value == nil {
		*s = StockStatusAvailable
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = StockStatus(v)
	case int:
		*s = StockStatus(v)
	}
	return nil
}
