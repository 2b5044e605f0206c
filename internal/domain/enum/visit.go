package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// VisitType classifies a hospital visit
type VisitType int

const (
	VisitTypeOPD VisitType = iota
	VisitTypeIPD
	VisitTypeEmergency
)

var visitTypeNames = [...]string{"opd", "ipd", "emergency"}

func (t VisitType) String() string {
	if t < 0 || int(t) >= len(visitTypeNames) {
		return "opd"
	}
	return visitTypeNames[t]
}

func (t VisitType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *VisitType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = VisitType(i)
		return nil
	}
	for i, name := range visitTypeNames {
		if name == str {
			*t = VisitType(i)
			return nil
		}
	}
	return nil
}

func (t VisitType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *VisitType) Scan(value interface{}) error {
	if value == nil {
		*t = VisitTypeOPD
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = VisitType(v)
	case int:
		*t = VisitType(v)
	}
	return nil
}

// VisitStatus represents the lifecycle status of a visit
type VisitStatus int

const (
	VisitStatusAdmitted VisitStatus = iota
	VisitStatusUnderObservation
	VisitStatusDischarged
	VisitStatusTransferred
)

var visitStatusNames = [...]string{"admitted", "under_observation", "discharged", "transferred"}

func (s VisitStatus) String() string {
	if s < 0 || int(s) >= len(visitStatusNames) {
		return "unknown"
	}
	return visitStatusNames[s]
}

// IsClosed reports whether the patient has left care under this visit.
func (s VisitStatus) IsClosed() bool {
	return s == VisitStatusDischarged || s == VisitStatusTransferred
}

func (s VisitStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *VisitStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = VisitStatus(i)
		return nil
	}
	for i, name := range visitStatusNames {
		if name == str {
			*s = VisitStatus(i)
			return nil
		}
	}
	return nil
}

func (s VisitStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *VisitStatus) Scan(value interface{}) error {
	if value == nil {
		*s = VisitStatusAdmitted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = VisitStatus(v)
	case int:
		*s = VisitStatus(v)
	}
	return nil
}

// ParseVisitType parses a wire string into a VisitType.
func ParseVisitType(str string) (VisitType, bool) {
	for i, name := range visitTypeNames {
		if name == str {
			return VisitType(i), true
		}
	}
	return VisitTypeOPD, false
}

// ParseVisitStatus parses a wire string into a VisitStatus.
func ParseVisitStatus(str string) (VisitStatus, bool) {
	for i, name := range visitStatusNames {
		if name == str {
			return VisitStatus(i), true
		}
	}
	return VisitStatusAdmitted, false
}
