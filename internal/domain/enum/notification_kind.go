package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// NotificationKind classifies a notification for display grouping
type NotificationKind int

const (
	NotificationKindSystem NotificationKind = iota
	NotificationKindAppointment
	NotificationKindBilling
	NotificationKindInventory
	NotificationKindReport
)

var notificationKindNames = [...]string{"system", "appointment", "billing", "inventory", "report"}

func (k NotificationKind) String() string {
	if k < 0 || int(k) >= len(notificationKindNames) {
		return "system"
	}
	return notificationKindNames[k]
}

func (k NotificationKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *NotificationKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = NotificationKind(i)
		return nil
	}
	for i, name := range notificationKindNames {
		if name == str {
			*k = NotificationKind(i)
			return nil
		}
	}
	return nil
}

func (k NotificationKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *NotificationKind) Scan(value interface{}) error {
	if value == nil {
		*k = NotificationKindSystem
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = NotificationKind(v)
	case int:
		*k = NotificationKind(v)
	}
	return nil
}
