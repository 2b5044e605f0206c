package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ItemCategory classifies an invoice line item
type ItemCategory int

const (
	ItemCategoryConsultation ItemCategory = iota
	ItemCategoryTest
	ItemCategoryBedCharge
	ItemCategoryProcedure
	ItemCategoryMedicine
	ItemCategoryOther
)

var itemCategoryNames = [...]string{
	"consultation", "test", "bed_charge", "procedure", "medicine", "other",
}

func (c ItemCategory) String() string {
	if c < 0 || int(c) >= len(itemCategoryNames) {
		return "other"
	}
	return itemCategoryNames[c]
}

func (c ItemCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ItemCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = ItemCategory(i)
		return nil
	}
	for i, name := range itemCategoryNames {
		if name == str {
			*c = ItemCategory(i)
			return nil
		}
	}
	*c = ItemCategoryOther
	return nil
}

func (c ItemCategory) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *ItemCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ItemCategoryOther
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = ItemCategory(v)
	case int:
		*c = ItemCategory(v)
	}
	return nil
}
