package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medicore/hms-api/internal/application/service"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/internal/presentation/http/dto/request"
	"github.com/medicore/hms-api/internal/presentation/http/dto/response"
	"github.com/medicore/hms-api/pkg/pagination"
)

// StaffHandler handles staff-related HTTP requests
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// List handles listing staff profiles
func (h *StaffHandler) List(c *gin.Context) {
	var filter request.StaffFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.StaffFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:      filter.Search,
		Department:  filter.Department,
		Designation: filter.Designation,
		ActiveOnly:  filter.ActiveOnly,
	}

	result, err := h.staffService.ListStaff(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Staff retrieved successfully", result)
}

// ListDoctors handles listing active doctors for appointment booking
func (h *StaffHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.staffService.ListDoctors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Doctors retrieved successfully", doctors)
}

// Create handles creating a staff profile for an existing account
func (h *StaffHandler) Create(c *gin.Context) {
	var req request.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), &service.CreateStaffInput{
		UserID:          req.UserID,
		Department:      req.Department,
		Designation:     req.Designation,
		Specialization:  req.Specialization,
		LicenseNo:       req.LicenseNo,
		ConsultationFee: req.ConsultationFee,
		JoiningDate:     req.JoiningDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff profile created successfully", staff)
}

// Get handles getting a single staff profile
func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff retrieved successfully", staff)
}

// Update handles updating a staff profile
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	var req request.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), id, &service.UpdateStaffInput{
		Department:      req.Department,
		Designation:     req.Designation,
		Specialization:  req.Specialization,
		LicenseNo:       req.LicenseNo,
		ConsultationFee: req.ConsultationFee,
		Active:          req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff updated successfully", staff)
}

// Delete handles removing a staff profile
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	if err := h.staffService.DeleteStaff(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff deleted successfully", nil)
}
