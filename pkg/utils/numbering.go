package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// FormatDailyNo builds day-scoped document numbers such as
// INV-20260829-0007. seq is 1-based within the day.
func FormatDailyNo(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), seq)
}

// GeneratePatientNo generates a unique patient registration number
func GeneratePatientNo() string {
	return "PAT-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateStaffNo generates a unique staff number
func GenerateStaffNo() string {
	return "EMP-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateVisitNo generates a unique visit number
func GenerateVisitNo() string {
	return "VIS-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateMedicineCode generates a unique medicine stock code
func GenerateMedicineCode() string {
	return "MED-" + strings.ToUpper(uuid.New().String()[:8])
}
