package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Gender represents a patient's recorded gender
type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
	GenderOther
)

var genderNames = [...]string{"male", "female", "other"}

func (g Gender) String() string {
	if g < 0 || int(g) >= len(genderNames) {
		return "other"
	}
	return genderNames[g]
}

func (g Gender) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*g = Gender(i)
		return nil
	}
	for i, name := range genderNames {
		if name == str {
			*g = Gender(i)
			return nil
		}
	}
	*g = GenderOther
	return nil
}

func (g Gender) Value() (driver.Value, error) {
	return int64(g), nil
}

func (g *Gender) Scan(value interface{}) error {
	if value == nil {
		*g = GenderOther
		return nil
	}
	switch v := value.(type) {
	case int64:
		*g = Gender(v)
	case int:
		*g = Gender(v)
	}
	return nil
}

// PatientStatus represents a patient record's status
type PatientStatus int

const (
	PatientStatusActive PatientStatus = iota
	PatientStatusInactive
	PatientStatusDeceased
)

var patientStatusNames = [...]string{"active", "inactive", "deceased"}

func (s PatientStatus) String() string {
	if s < 0 || int(s) >= len(patientStatusNames) {
		return "unknown"
	}
	return patientStatusNames[s]
}

func (s PatientStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PatientStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PatientStatus(i)
		return nil
	}
	for i, name := range patientStatusNames {
		if name == str {
			*s = PatientStatus(i)
			return nil
		}
	}
	return nil
}

func (s PatientStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PatientStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PatientStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PatientStatus(v)
	case int:
		*s = PatientStatus(v)
	}
	return nil
}

// ParseGender parses a wire string into a Gender.
func ParseGender(str string) (Gender, bool) {
	for i, name := range genderNames {
		if name == str {
			return Gender(i), true
		}
	}
	return GenderOther, false
}

// ParsePatientStatus parses a wire string into a PatientStatus.
func ParsePatientStatus(str string) (PatientStatus, bool) {
	for i, name := range patientStatusNames {
		if name == str {
			return PatientStatus(i), true
		}
	}
	return PatientStatusActive, false
}
