package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReportType classifies a medical report
type ReportType int

const (
	ReportTypeLab ReportType = iota
	ReportTypeRadiology
	ReportTypePrescription
	ReportTypeDischargeSummary
	ReportTypeOther
)

var reportTypeNames = [...]string{"lab", "radiology", "prescription", "discharge_summary", "other"}

func (t ReportType) String() string {
	if t < 0 || int(t) >= len(reportTypeNames) {
		return "other"
	}
	return reportTypeNames[t]
}

func (t ReportType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ReportType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ReportType(i)
		return nil
	}
	for i, name := range reportTypeNames {
		if name == str {
			*t = ReportType(i)
			return nil
		}
	}
	*t = ReportTypeOther
	return nil
}

func (t ReportType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ReportType) Scan(value interface{}) error {
	if value == nil {
		*t = ReportTypeOther
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ReportType(v)
	case int:
		*t = ReportType(v)
	}
	return nil
}

// ReportStatus represents the review status of a medical report
type ReportStatus int

const (
	ReportStatusPending ReportStatus = iota
	ReportStatusCompleted
	ReportStatusReviewed
)

var reportStatusNames = [...]string{"pending", "completed", "reviewed"}

func (s ReportStatus) String() string {
	if s < 0 || int(s) >= len(reportStatusNames) {
		return "pending"
	}
	return reportStatusNames[s]
}

func (s ReportStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReportStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ReportStatus(i)
		return nil
	}
	for i, name := range reportStatusNames {
		if name == str {
			*s = ReportStatus(i)
			return nil
		}
	}
	return nil
}

func (s ReportStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReportStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReportStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ReportStatus(v)
	case int:
		*s = ReportStatus(v)
	}
	return nil
}

// ParseReportType parses a wire string into a ReportType.
func ParseReportType(str string) (ReportType, bool) {
	for i, name := range reportTypeNames {
		if name == str {
			return ReportType(i), true
		}
	}
	return ReportTypeOther, false
}

// ParseReportStatus parses a wire string into a ReportStatus.
func ParseReportStatus(str string) (ReportStatus, bool) {
	for i, name := range reportStatusNames {
		if name == str {
			return ReportStatus(i), true
		}
	}
	return ReportStatusPending, false
}
