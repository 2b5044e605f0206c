package request

// UpdateSettingsRequest represents a hospital settings update request
type UpdateSettingsRequest struct {
	HospitalName     *string  `json:"hospital_name"`
	Address          *string  `json:"address"`
	Phone            *string  `json:"phone"`
	Email            *string  `json:"email"`
	Currency         *string  `json:"currency"`
	DefaultTaxPct    *float64 `json:"default_tax_pct"`
	InvoiceDueDays   *int     `json:"invoice_due_days"`
	InvoicePrefix    *string  `json:"invoice_prefix"`
	ExpiryWindowDays *int     `json:"expiry_window_days"`
	DefaultMinStock  *int     `json:"default_min_stock"`
}
