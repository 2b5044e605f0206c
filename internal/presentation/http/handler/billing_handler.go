package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medicore/hms-api/internal/application/service"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/internal/presentation/http/dto/request"
	"github.com/medicore/hms-api/internal/presentation/http/dto/response"
	"github.com/medicore/hms-api/pkg/pagination"
)

// BillingHandler handles invoice and payment HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
	printerService *service.PrinterService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService, printerService *service.PrinterService) *BillingHandler {
	return &BillingHandler{billingService: billingService, printerService: printerService}
}

// List handles listing invoices
func (h *BillingHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:      filter.Search,
		PatientID:   parseUUIDFilter(filter.PatientID),
		OverdueOnly: filter.OverdueOnly,
		From:        parseDateFilter(filter.From),
		To:          parseDateFilter(filter.To),
	}

	if filter.Status != "" {
		if status, ok := enum.ParseInvoiceStatus(filter.Status); ok {
			params.Status = &status
		}
	}

	// Patients only ever see their own invoices
	if patientID := GetPatientID(c); patientID != nil {
		params.PatientID = patientID
	}

	result, err := h.billingService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating a draft invoice
func (h *BillingHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dueDate := parseDateFilter(deref(req.DueDate))
	if req.DueDate != nil && dueDate == nil {
		response.BadRequest(c, "Due date must be in YYYY-MM-DD format")
		return
	}

	invoice, err := h.billingService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		PatientID:   req.PatientID,
		VisitID:     req.VisitID,
		Items:       invoiceItems(req.Items),
		DiscountPct: req.DiscountPct,
		TaxPct:      req.TaxPct,
		DueDate:     dueDate,
		CreatedByID: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting a single invoice with its items and payments
func (h *BillingHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.billingService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if patientID := GetPatientID(c); patientID != nil && invoice.PatientID != *patientID {
		response.Forbidden(c, "Invoice belongs to another patient")
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles updating a draft invoice
func (h *BillingHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dueDate := parseDateFilter(deref(req.DueDate))
	if req.DueDate != nil && dueDate == nil {
		response.BadRequest(c, "Due date must be in YYYY-MM-DD format")
		return
	}

	invoice, err := h.billingService.UpdateDraft(c.Request.Context(), id, &service.UpdateDraftInput{
		Items:       invoiceItems(req.Items),
		DiscountPct: req.DiscountPct,
		TaxPct:      req.TaxPct,
		DueDate:     dueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Finalize handles issuing a draft invoice
func (h *BillingHandler) Finalize(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.billingService.Finalize(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice finalized successfully", invoice)
}

// Cancel handles cancelling an invoice
func (h *BillingHandler) Cancel(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.billingService.CancelInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice cancelled successfully", invoice)
}

// ListPayments handles listing payments recorded against an invoice
func (h *BillingHandler) ListPayments(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if patientID := GetPatientID(c); patientID != nil {
		invoice, err := h.billingService.GetInvoice(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		if invoice.PatientID != *patientID {
			response.Forbidden(c, "Invoice belongs to another patient")
			return
		}
	}

	payments, err := h.billingService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// RecordPayment handles taking a payment against an invoice
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.billingService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		InvoiceID:     id,
		Amount:        req.Amount,
		Method:        req.Method,
		ReferenceNo:   req.ReferenceNo,
		ChequeNo:      req.ChequeNo,
		BankName:      req.BankName,
		ProcessedByID: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", invoice)
}

// PrintReceipt handles printing a thermal receipt for an invoice
func (h *BillingHandler) PrintReceipt(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	receipt, err := h.printerService.PrintInvoiceReceipt(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", receipt)
}

func invoiceItems(items []request.InvoiceItemRequest) []service.InvoiceItemInput {
	inputs := make([]service.InvoiceItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.InvoiceItemInput{
			Description: item.Description,
			Category:    item.Category,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return inputs
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
