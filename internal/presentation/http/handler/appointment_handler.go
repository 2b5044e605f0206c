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

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// List handles listing appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	var filter request.AppointmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.AppointmentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		PatientID: parseUUIDFilter(filter.PatientID),
		DoctorID:  parseUUIDFilter(filter.DoctorID),
		From:      parseDateFilter(filter.From),
		To:        parseDateFilter(filter.To),
	}

	if filter.Status != "" {
		if status, ok := enum.ParseAppointmentStatus(filter.Status); ok {
			params.Status = &status
		}
	}
	if filter.Type != "" {
		if apptType, ok := enum.ParseAppointmentType(filter.Type); ok {
			params.Type = &apptType
		}
	}

	// Patients only ever see their own bookings
	if patientID := GetPatientID(c); patientID != nil {
		params.PatientID = patientID
	}

	result, err := h.appointmentService.ListAppointments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Appointments retrieved successfully", result)
}

// Book handles booking an appointment
func (h *AppointmentHandler) Book(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.BookAppointmentInput{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
		DurationMin: req.DurationMin,
		Type:        req.Type,
		Reason:      req.Reason,
		CreatedByID: *userID,
	}

	// Patients can only book for themselves
	if patientID := GetPatientID(c); patientID != nil {
		input.PatientID = *patientID
	}

	appointment, err := h.appointmentService.BookAppointment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Appointment booked successfully", appointment)
}

// Get handles getting a single appointment
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if patientID := GetPatientID(c); patientID != nil && appointment.PatientID != *patientID {
		response.Forbidden(c, "Appointment belongs to another patient")
		return
	}

	response.OK(c, "Appointment retrieved successfully", appointment)
}

// Reschedule handles moving an appointment to a new slot
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	appointment, err := h.appointmentService.Reschedule(c.Request.Context(), id, &service.RescheduleInput{
		ScheduledAt: req.ScheduledAt,
		DurationMin: req.DurationMin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment rescheduled successfully", appointment)
}

// UpdateStatus handles moving an appointment through its lifecycle
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request.Context(), id, req.Status, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment status updated successfully", appointment)
}

// Cancel handles cancelling an appointment
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if patientID := GetPatientID(c); patientID != nil {
		appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		if appointment.PatientID != *patientID {
			response.Forbidden(c, "Appointment belongs to another patient")
			return
		}
	}

	if err := h.appointmentService.CancelAppointment(c.Request.Context(), id, req.Reason); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment cancelled successfully", nil)
}
