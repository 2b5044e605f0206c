package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Role represents a user's role in the hospital
type Role int

const (
	RoleAdmin Role = iota
	RoleDoctor
	RoleNurse
	RoleReceptionist
	RolePatient
	RoleLabTechnician
)

var roleNames = [...]string{
	"admin", "doctor", "nurse", "receptionist", "patient", "lab_technician",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// IsStaff reports whether the role belongs to hospital personnel.
func (r Role) IsStaff() bool {
	return r == RoleDoctor || r == RoleNurse || r == RoleReceptionist || r == RoleLabTechnician
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = Role(i)
		return nil
	}
	for i, name := range roleNames {
		if name == str {
			*r = Role(i)
			return nil
		}
	}
	*r = RolePatient
	return nil
}

// ParseRole parses a wire string into a Role.
func ParseRole(str string) (Role, bool) {
	for i, name := range roleNames {
		if name == str {
			return Role(i), true
		}
	}
	return RolePatient, false
}

func (r Role) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RolePatient
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = Role(v)
	case int:
		*r = Role(v)
	}
	return nil
}
