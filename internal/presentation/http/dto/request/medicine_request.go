package request

import (
	"github.com/google/uuid"
)

// CreateMedicineRequest represents a medicine creation request
type CreateMedicineRequest struct {
	Code         *string `json:"code"`
	Name         string  `json:"name" binding:"required,min=2,max=255"`
	GenericName  *string `json:"generic_name"`
	Category     *string `json:"category"`
	Manufacturer *string `json:"manufacturer"`
	BatchNo      *string `json:"batch_no"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unit_price" binding:"min=0"`
	Quantity     int     `json:"quantity" binding:"min=0"`
	MinThreshold *int    `json:"min_threshold"`
	ExpiryDate   string  `json:"expiry_date" binding:"required"`
}

// UpdateMedicineRequest represents a medicine update request
type UpdateMedicineRequest struct {
	Name         *string  `json:"name"`
	GenericName  *string  `json:"generic_name"`
	Category     *string  `json:"category"`
	Manufacturer *string  `json:"manufacturer"`
	BatchNo      *string  `json:"batch_no"`
	Unit         *string  `json:"unit"`
	UnitPrice    *float64 `json:"unit_price"`
	MinThreshold *int     `json:"min_threshold"`
	ExpiryDate   *string  `json:"expiry_date"`
}

// RestockRequest represents a stock addition request
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// DispenseRequest represents a stock dispense request
type DispenseRequest struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	Notes     *string   `json:"notes"`
}

// DispenseFilterRequest represents dispense history paging parameters
type DispenseFilterRequest struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// MedicineFilterRequest represents medicine filter parameters
type MedicineFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
