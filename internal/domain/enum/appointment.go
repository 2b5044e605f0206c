package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AppointmentType classifies the purpose of an appointment
type AppointmentType int

const (
	AppointmentTypeConsultation AppointmentType = iota
	AppointmentTypeFollowUp
	AppointmentTypeCheckup
	AppointmentTypeEmergency
)

var appointmentTypeNames = [...]string{"consultation", "follow_up", "checkup", "emergency"}

func (t AppointmentType) String() string {
	if t < 0 || int(t) >= len(appointmentTypeNames) {
		return "consultation"
	}
	return appointmentTypeNames[t]
}

func (t AppointmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *AppointmentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = AppointmentType(i)
		return nil
	}
	for i, name := range appointmentTypeNames {
		if name == str {
			*t = AppointmentType(i)
			return nil
		}
	}
	return nil
}

func (t AppointmentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *AppointmentType) Scan(value interface{}) error {
	if value == nil {
		*t = AppointmentTypeConsultation
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = AppointmentType(v)
	case int:
		*t = AppointmentType(v)
	}
	return nil
}

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus int

const (
	AppointmentStatusScheduled AppointmentStatus = iota
	AppointmentStatusConfirmed
	AppointmentStatusInProgress
	AppointmentStatusCompleted
	AppointmentStatusCancelled
	AppointmentStatusNoShow
)

var appointmentStatusNames = [...]string{
	"scheduled", "confirmed", "in_progress", "completed", "cancelled", "no_show",
}

func (s AppointmentStatus) String() string {
	if s < 0 || int(s) >= len(appointmentStatusNames) {
		return "unknown"
	}
	return appointmentStatusNames[s]
}

// IsTerminal reports whether no further transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled || s == AppointmentStatusNoShow
}

// CanTransitionTo reports whether the status may move to next.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case AppointmentStatusScheduled:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled || next == AppointmentStatusNoShow
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusInProgress || next == AppointmentStatusCancelled || next == AppointmentStatusNoShow
	case AppointmentStatusInProgress:
		return next == AppointmentStatusCompleted
	}
	return false
}

func (s AppointmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AppointmentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = AppointmentStatus(i)
		return nil
	}
	for i, name := range appointmentStatusNames {
		if name == str {
			*s = AppointmentStatus(i)
			return nil
		}
	}
	return nil
}

// ParseAppointmentStatus parses a wire string into an AppointmentStatus.
func ParseAppointmentStatus(str string) (AppointmentStatus, bool) {
	for i, name := range appointmentStatusNames {
		if name == str {
			return AppointmentStatus(i), true
		}
	}
	return AppointmentStatusScheduled, false
}

func (s AppointmentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *AppointmentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = AppointmentStatusScheduled
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = AppointmentStatus(v)
	case int:
		*s = AppointmentStatus(v)
	}
	return nil
}

// ParseAppointmentType parses a wire string into an AppointmentType.
func ParseAppointmentType(str string) (AppointmentType, bool) {
	for i, name := range appointmentTypeNames {
		if name == str {
			return AppointmentType(i), true
		}
	}
	return AppointmentTypeConsultation, false
}
