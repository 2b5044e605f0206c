package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a billable record grouping line items for a patient/visit
type Invoice struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo   string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	PatientID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	VisitID     *uuid.UUID         `gorm:"type:uuid;index" json:"visit_id,omitempty"`
	SubTotal    int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountPct float64            `gorm:"default:0" json:"discount_pct"`
	Discount    int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxPct      float64            `gorm:"default:0" json:"tax_pct"`
	Tax         int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total       int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Paid        int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Balance     int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Status      enum.InvoiceStatus `gorm:"default:0;index" json:"status"`
	DueDate     time.Time          `gorm:"type:date;not null" json:"due_date"`
	CreatedByID uuid.UUID          `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	// Derived at read time, never persisted
	IsOverdue   bool `gorm:"-" json:"is_overdue"`
	DaysOverdue int  `gorm:"-" json:"days_overdue"`

	// Relationships
	Patient   Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Visit     *Visit        `gorm:"foreignKey:VisitID" json:"-"`
	CreatedBy User          `gorm:"foreignKey:CreatedByID" json:"-"`
	Items     []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments  []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Discount float64 `json:"discount"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
		Paid     float64 `json:"paid"`
		Balance  float64 `json:"balance"`
	}{
		Alias:    Alias(i),
		SubTotal: float64(i.SubTotal) / 100,
		Discount: float64(i.Discount) / 100,
		Tax:      float64(i.Tax) / 100,
		Total:    float64(i.Total) / 100,
		Paid:     float64(i.Paid) / 100,
		Balance:  float64(i.Balance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// IsFinalized reports whether line items are frozen. Anything past draft
// rejects item mutation.
func (i *Invoice) IsFinalized() bool {
	return i.Status != enum.InvoiceStatusDraft
}

// InvoiceItem represents one billed service or product on an invoice
type InvoiceItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string            `gorm:"size:255;not null" json:"description"`
	Category    enum.ItemCategory `gorm:"default:5" json:"category"`
	Quantity    int               `gorm:"not null" json:"quantity"`
	UnitPrice   int64             `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total       int64             `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Position    int               `gorm:"default:0" json:"position"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (it InvoiceItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(it),
		UnitPrice: float64(it.UnitPrice) / 100,
		Total:     float64(it.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Payment represents a recorded payment against an invoice. Append-only.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount        int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Method        enum.PaymentMethod `gorm:"default:0" json:"method"`
	ReferenceNo   *string            `gorm:"size:255" json:"reference_no,omitempty"`
	ChequeNo      *string            `gorm:"size:100" json:"cheque_no,omitempty"`
	BankName      *string            `gorm:"size:255" json:"bank_name,omitempty"`
	ProcessedByID uuid.UUID          `gorm:"type:uuid;not null" json:"processed_by_id"`
	PaidAt        time.Time          `gorm:"not null" json:"paid_at"`
	CreatedAt     time.Time          `json:"created_at"`

	// Relationships
	Invoice     Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	ProcessedBy User    `gorm:"foreignKey:ProcessedByID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
