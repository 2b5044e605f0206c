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

// PatientHandler handles patient-related HTTP requests
type PatientHandler struct {
	patientService *service.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// List handles listing patients
func (h *PatientHandler) List(c *gin.Context) {
	var filter request.PatientFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PatientFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		From:      parseDateFilter(filter.From),
		To:        parseDateFilter(filter.To),
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.Gender != "" {
		if gender, ok := enum.ParseGender(filter.Gender); ok {
			params.Gender = &gender
		}
	}
	if filter.Status != "" {
		if status, ok := enum.ParsePatientStatus(filter.Status); ok {
			params.Status = &status
		}
	}

	result, err := h.patientService.ListPatients(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Patients retrieved successfully", result)
}

// Create handles registering a walk-in patient
func (h *PatientHandler) Create(c *gin.Context) {
	var req request.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	patient, err := h.patientService.CreatePatient(c.Request.Context(), &service.CreatePatientInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Gender:           req.Gender,
		DateOfBirth:      req.DateOfBirth,
		BloodGroup:       req.BloodGroup,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Allergies:        req.Allergies,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Patient registered successfully", patient)
}

// Get handles getting a single patient
func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetPatient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient retrieved successfully", patient)
}

// GetMe returns the patient record linked to the authenticated account
func (h *PatientHandler) GetMe(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	patient, err := h.patientService.GetPatientForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient retrieved successfully", patient)
}

// Update handles updating a patient record
func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	var req request.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	patient, err := h.patientService.UpdatePatient(c.Request.Context(), id, &service.UpdatePatientInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Gender:           req.Gender,
		DateOfBirth:      req.DateOfBirth,
		BloodGroup:       req.BloodGroup,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Allergies:        req.Allergies,
		Status:           req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient updated successfully", patient)
}

// Delete handles archiving a patient record
func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	if err := h.patientService.DeletePatient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient deleted successfully", nil)
}
