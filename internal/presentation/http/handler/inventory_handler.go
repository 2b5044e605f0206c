package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medicore/hms-api/internal/application/service"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/internal/presentation/http/dto/request"
	"github.com/medicore/hms-api/internal/presentation/http/dto/response"
	"github.com/medicore/hms-api/pkg/pagination"
)

// InventoryHandler handles medicine inventory HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List handles listing medicines
func (h *InventoryHandler) List(c *gin.Context) {
	var filter request.MedicineFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.MedicineFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		Category:  filter.Category,
		LowStock:  filter.LowStock,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	result, err := h.inventoryService.ListMedicines(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Medicines retrieved successfully", result)
}

// Create handles adding a medicine to the inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req request.CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		response.BadRequest(c, "Expiry date must be in YYYY-MM-DD format")
		return
	}

	medicine, err := h.inventoryService.CreateMedicine(c.Request.Context(), &service.CreateMedicineInput{
		Code:         req.Code,
		Name:         req.Name,
		GenericName:  req.GenericName,
		Category:     req.Category,
		BatchNo:      req.BatchNo,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		MinThreshold: req.MinThreshold,
		UnitPrice:    req.UnitPrice,
		ExpiryDate:   expiry,
		Manufacturer: req.Manufacturer,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Medicine created successfully", medicine)
}

// Get handles getting a single medicine with its stock status
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid medicine ID")
		return
	}

	medicine, err := h.inventoryService.GetMedicine(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	status, err := h.inventoryService.StockStatus(c.Request.Context(), medicine)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medicine retrieved successfully", gin.H{
		"medicine":     medicine,
		"stock_status": status,
	})
}

// Update handles updating a medicine's descriptive fields
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid medicine ID")
		return
	}

	var req request.UpdateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateMedicineInput{
		Name:         req.Name,
		GenericName:  req.GenericName,
		Category:     req.Category,
		BatchNo:      req.BatchNo,
		Unit:         req.Unit,
		MinThreshold: req.MinThreshold,
		UnitPrice:    req.UnitPrice,
		Manufacturer: req.Manufacturer,
	}
	if req.ExpiryDate != nil {
		expiry, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			response.BadRequest(c, "Expiry date must be in YYYY-MM-DD format")
			return
		}
		input.ExpiryDate = &expiry
	}

	medicine, err := h.inventoryService.UpdateMedicine(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medicine updated successfully", medicine)
}

// Delete handles removing a medicine from the inventory
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid medicine ID")
		return
	}

	if err := h.inventoryService.DeleteMedicine(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Medicine deleted successfully", nil)
}

// Restock handles adding stock to a medicine
func (h *InventoryHandler) Restock(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid medicine ID")
		return
	}

	var req request.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	medicine, err := h.inventoryService.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock added successfully", medicine)
}

// Dispense handles dispensing stock to a patient
func (h *InventoryHandler) Dispense(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid medicine ID")
		return
	}

	var req request.DispenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.inventoryService.Dispense(c.Request.Context(), &service.DispenseInput{
		MedicineID:    id,
		PatientID:     req.PatientID,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
		DispensedByID: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Medicine dispensed successfully", record)
}

// GetLowStock handles listing medicines at or below their minimum threshold
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	medicines, err := h.inventoryService.ListLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock medicines retrieved successfully", medicines)
}

// GetExpiring handles listing medicines expiring within the configured window
func (h *InventoryHandler) GetExpiring(c *gin.Context) {
	medicines, err := h.inventoryService.ListExpiring(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expiring medicines retrieved successfully", medicines)
}

// ListDispenses handles listing the dispense history of a medicine
func (h *InventoryHandler) ListDispenses(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid medicine ID")
		return
	}

	var filter request.DispenseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	result, err := h.inventoryService.ListDispenses(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Dispense records retrieved successfully", result)
}

// ListPatientDispenses handles listing what has been dispensed to a patient
func (h *InventoryHandler) ListPatientDispenses(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	if patientID := GetPatientID(c); patientID != nil && id != *patientID {
		response.Forbidden(c, "Dispense history belongs to another patient")
		return
	}

	var filter request.DispenseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	result, err := h.inventoryService.ListPatientDispenses(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Dispense records retrieved successfully", result)
}
