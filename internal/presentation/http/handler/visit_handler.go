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

// VisitHandler handles visit-related HTTP requests
type VisitHandler struct {
	visitService *service.VisitService
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visitService *service.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

// List handles listing visits
func (h *VisitHandler) List(c *gin.Context) {
	var filter request.VisitFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.VisitFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		PatientID: parseUUIDFilter(filter.PatientID),
		StaffID:   parseUUIDFilter(filter.StaffID),
		From:      parseDateFilter(filter.From),
		To:        parseDateFilter(filter.To),
	}

	if filter.Status != "" {
		if status, ok := enum.ParseVisitStatus(filter.Status); ok {
			params.Status = &status
		}
	}
	if filter.Type != "" {
		if visitType, ok := enum.ParseVisitType(filter.Type); ok {
			params.Type = &visitType
		}
	}

	// Patients only ever see their own visits
	if patientID := GetPatientID(c); patientID != nil {
		params.PatientID = patientID
	}

	result, err := h.visitService.ListVisits(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Visits retrieved successfully", result)
}

// Open handles admitting a patient or opening an outpatient encounter
func (h *VisitHandler) Open(c *gin.Context) {
	var req request.OpenVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.visitService.OpenVisit(c.Request.Context(), &service.OpenVisitInput{
		PatientID:     req.PatientID,
		StaffID:       req.StaffID,
		AppointmentID: req.AppointmentID,
		Type:          req.Type,
		Ward:          req.Ward,
		BedNo:         req.BedNo,
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Visit opened successfully", visit)
}

// Get handles getting a single visit
func (h *VisitHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid visit ID")
		return
	}

	visit, err := h.visitService.GetVisit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if patientID := GetPatientID(c); patientID != nil && visit.PatientID != *patientID {
		response.Forbidden(c, "Visit belongs to another patient")
		return
	}

	response.OK(c, "Visit retrieved successfully", visit)
}

// Update handles updating an open visit
func (h *VisitHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid visit ID")
		return
	}

	var req request.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.visitService.UpdateVisit(c.Request.Context(), id, &service.UpdateVisitInput{
		Status:    req.Status,
		Ward:      req.Ward,
		BedNo:     req.BedNo,
		Diagnosis: req.Diagnosis,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Visit updated successfully", visit)
}

// Discharge handles closing a visit
func (h *VisitHandler) Discharge(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid visit ID")
		return
	}

	var req request.DischargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.visitService.Discharge(c.Request.Context(), id, req.Status, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient discharged successfully", visit)
}
