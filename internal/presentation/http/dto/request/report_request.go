package request

// CreateReportRequest represents a medical report creation form.
// Bound from multipart form data; the optional file part is read
// separately by the handler.
type CreateReportRequest struct {
	PatientID string `form:"patient_id" binding:"required"`
	VisitID   string `form:"visit_id"`
	Type      string `form:"type" binding:"required"`
	Title     string `form:"title" binding:"required,min=2,max=255"`
	Findings  string `form:"findings"`
}

// UpdateReportRequest represents a report update request
type UpdateReportRequest struct {
	Type     *string `json:"type"`
	Title    *string `json:"title"`
	Findings *string `json:"findings"`
}

// ReportFilterRequest represents report filter parameters
type ReportFilterRequest struct {
	Search    string `form:"search"`
	Type      string `form:"type"`
	Status    string `form:"status"`
	PatientID string `form:"patient_id"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
