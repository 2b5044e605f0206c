package request

import (
	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/enum"
)

// InvoiceItemRequest represents a single invoice line item
type InvoiceItemRequest struct {
	Description string            `json:"description" binding:"required,min=1,max=255"`
	Category    enum.ItemCategory `json:"category"`
	Quantity    int               `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64           `json:"unit_price" binding:"min=0"`
}

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	PatientID   uuid.UUID            `json:"patient_id" binding:"required"`
	VisitID     *uuid.UUID           `json:"visit_id"`
	Items       []InvoiceItemRequest `json:"items" binding:"required,dive"`
	DiscountPct *float64             `json:"discount_pct"`
	TaxPct      *float64             `json:"tax_pct"`
	DueDate     *string              `json:"due_date"`
}

// UpdateDraftRequest represents a draft invoice update request
type UpdateDraftRequest struct {
	Items       []InvoiceItemRequest `json:"items"`
	DiscountPct *float64             `json:"discount_pct"`
	TaxPct      *float64             `json:"tax_pct"`
	DueDate     *string              `json:"due_date"`
}

// RecordPaymentRequest represents a payment against an invoice
type RecordPaymentRequest struct {
	Amount      float64            `json:"amount" binding:"required,gt=0"`
	Method      enum.PaymentMethod `json:"method"`
	ReferenceNo *string            `json:"reference_no"`
	ChequeNo    *string            `json:"cheque_no"`
	BankName    *string            `json:"bank_name"`
}

// InvoiceFilterRequest represents invoice filter parameters
type InvoiceFilterRequest struct {
	Search      string `form:"search"`
	Status      string `form:"status"`
	PatientID   string `form:"patient_id"`
	OverdueOnly bool   `form:"overdue_only"`
	From        string `form:"from"`
	To          string `form:"to"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}
