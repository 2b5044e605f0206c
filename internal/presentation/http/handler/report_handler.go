package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/application/service"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/internal/presentation/http/dto/request"
	"github.com/medicore/hms-api/internal/presentation/http/dto/response"
	"github.com/medicore/hms-api/pkg/pagination"
)

// ReportHandler handles medical report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// List handles listing medical reports
func (h *ReportHandler) List(c *gin.Context) {
	var filter request.ReportFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ReportFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		PatientID: parseUUIDFilter(filter.PatientID),
	}

	if filter.Type != "" {
		if reportType, ok := enum.ParseReportType(filter.Type); ok {
			params.Type = &reportType
		}
	}
	if filter.Status != "" {
		if status, ok := enum.ParseReportStatus(filter.Status); ok {
			params.Status = &status
		}
	}

	// Patients only ever see their own reports
	if patientID := GetPatientID(c); patientID != nil {
		params.PatientID = patientID
	}

	result, err := h.reportService.ListReports(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Reports retrieved successfully", result)
}

// Create handles uploading a medical report. The request is multipart form
// data with an optional file part.
func (h *ReportHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateReportRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	var visitID *uuid.UUID
	if req.VisitID != "" {
		parsed, err := uuid.Parse(req.VisitID)
		if err != nil {
			response.BadRequest(c, "Invalid visit ID")
			return
		}
		visitID = &parsed
	}

	reportType, ok := enum.ParseReportType(req.Type)
	if !ok {
		response.BadRequest(c, "Unknown report type: "+req.Type)
		return
	}

	input := &service.CreateReportInput{
		PatientID:    patientID,
		VisitID:      visitID,
		Type:         reportType,
		Title:        req.Title,
		UploadedByID: *userID,
	}
	if req.Findings != "" {
		input.Findings = &req.Findings
	}
	if file, err := c.FormFile("file"); err == nil {
		input.File = file
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Report created successfully", report)
}

// Get handles getting a single report
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if patientID := GetPatientID(c); patientID != nil && report.PatientID != *patientID {
		response.Forbidden(c, "Report belongs to another patient")
		return
	}

	response.OK(c, "Report retrieved successfully", report)
}

// Download streams the attached report file
func (h *ReportHandler) Download(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	if patientID := GetPatientID(c); patientID != nil {
		report, err := h.reportService.GetReport(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		if report.PatientID != *patientID {
			response.Forbidden(c, "Report belongs to another patient")
			return
		}
	}

	path, fileName, err := h.reportService.ReportFilePath(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(path, fileName)
}

// Update handles editing a report before it is reviewed
func (h *ReportHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	var req request.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateReportInput{
		Title:    req.Title,
		Findings: req.Findings,
	}
	if req.Type != nil {
		reportType, ok := enum.ParseReportType(*req.Type)
		if !ok {
			response.BadRequest(c, "Unknown report type: "+*req.Type)
			return
		}
		input.Type = &reportType
	}

	report, err := h.reportService.UpdateReport(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report updated successfully", report)
}

// Complete marks a pending report as completed
func (h *ReportHandler) Complete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.reportService.CompleteReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report completed successfully", report)
}

// Review marks a completed report as reviewed by the authenticated doctor
func (h *ReportHandler) Review(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.reportService.ReviewReport(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report reviewed successfully", report)
}

// Delete handles deleting a report and its attached file
func (h *ReportHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report deleted successfully", nil)
}
