package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/pkg/apperror"
	"github.com/medicore/hms-api/pkg/email"
	"github.com/medicore/hms-api/pkg/pagination"
)

// AppointmentService handles appointment scheduling
type AppointmentService struct {
	appointmentRepo     repository.AppointmentRepository
	patientRepo         repository.PatientRepository
	staffRepo           repository.StaffRepository
	emailService        *email.EmailService
	notificationService *NotificationService
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	staffRepo repository.StaffRepository,
	emailService *email.EmailService,
	notificationService *NotificationService,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo:     appointmentRepo,
		patientRepo:         patientRepo,
		staffRepo:           staffRepo,
		emailService:        emailService,
		notificationService: notificationService,
	}
}

// BookAppointmentInput represents the booking input
type BookAppointmentInput struct {
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	ScheduledAt time.Time
	DurationMin int
	Type        enum.AppointmentType
	Reason      *string
	CreatedByID uuid.UUID
}

// BookAppointment books a slot with a doctor, rejecting overlapping slots
func (s *AppointmentService) BookAppointment(ctx context.Context, input *BookAppointmentInput) (*entity.Appointment, error) {
	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	doctor, err := s.staffRepo.GetByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.Active {
		return nil, apperror.NewNotFoundError("Doctor")
	}

	if input.ScheduledAt.Before(time.Now()) {
		return nil, apperror.NewBadRequestError("Cannot book an appointment in the past")
	}
	if input.DurationMin <= 0 {
		input.DurationMin = 30
	}

	appointment := &entity.Appointment{
		PatientID:   input.PatientID,
		DoctorID:    input.DoctorID,
		ScheduledAt: input.ScheduledAt,
		DurationMin: input.DurationMin,
		Type:        input.Type,
		Status:      enum.AppointmentStatusScheduled,
		Reason:      input.Reason,
		CreatedByID: input.CreatedByID,
	}

	if err := s.checkConflicts(ctx, appointment, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.sendConfirmation(patient, doctor, appointment)

	if s.notificationService != nil {
		doctorUserID := doctor.UserID
		body := fmt.Sprintf("%s booked for %s", patient.FullName(), appointment.ScheduledAt.Format("02 Jan 2006 15:04"))
		if err := s.notificationService.Notify(ctx, doctorUserID, enum.NotificationKindAppointment,
			"New appointment", body, &appointment.ID); err != nil {
			log.Printf("Warning: failed to notify doctor about appointment %s: %v", appointment.ID, err)
		}
	}

	return s.appointmentRepo.GetByID(ctx, appointment.ID)
}

// checkConflicts rejects the slot if it overlaps any live appointment of
// the doctor. excludeID skips the appointment being rescheduled.
func (s *AppointmentService) checkConflicts(ctx context.Context, appointment *entity.Appointment, excludeID uuid.UUID) error {
	existing, err := s.appointmentRepo.ListForDoctorBetween(ctx, appointment.DoctorID,
		appointment.ScheduledAt, appointment.EndsAt())
	if err != nil {
		return err
	}

	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if appointment.Overlaps(&existing[i]) {
			return apperror.ErrSlotTaken
		}
	}
	return nil
}

func (s *AppointmentService) sendConfirmation(patient *entity.Patient, doctor *entity.Staff, appointment *entity.Appointment) {
	if s.emailService == nil || patient.Email == nil {
		return
	}
	doctorName := "Dr. " + doctor.User.FullName()
	if err := s.emailService.SendAppointmentConfirmation(*patient.Email, patient.FullName(), doctorName, appointment.ScheduledAt); err != nil {
		log.Printf("Warning: failed to send appointment confirmation to %s: %v", *patient.Email, err)
	}
}

// GetAppointment retrieves an appointment by ID
func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	return appointment, nil
}

// ListAppointments lists appointments with filtering
func (s *AppointmentService) ListAppointments(ctx context.Context, params *repository.AppointmentFilterParams) (*pagination.PaginatedResult[entity.Appointment], error) {
	appointments, total, err := s.appointmentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(appointments, pag), nil
}

// RescheduleInput represents the reschedule input
type RescheduleInput struct {
	ScheduledAt time.Time
	DurationMin int
}

// Reschedule moves an appointment to a new slot
func (s *AppointmentService) Reschedule(ctx context.Context, id uuid.UUID, input *RescheduleInput) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	if appointment.Status.IsTerminal() {
		return nil, apperror.NewConflictError("Appointment can no longer be rescheduled")
	}
	if input.ScheduledAt.Before(time.Now()) {
		return nil, apperror.NewBadRequestError("Cannot reschedule into the past")
	}

	appointment.ScheduledAt = input.ScheduledAt
	if input.DurationMin > 0 {
		appointment.DurationMin = input.DurationMin
	}

	if err := s.checkConflicts(ctx, appointment, appointment.ID); err != nil {
		return nil, err
	}

	// A rescheduled appointment goes back to awaiting confirmation
	appointment.Status = enum.AppointmentStatusScheduled

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

// UpdateStatus transitions the appointment through its lifecycle
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus, notes *string) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}

	if !appointment.Status.CanTransitionTo(status) {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("Cannot move appointment from %s to %s", appointment.Status, status))
	}

	appointment.Status = status
	if notes != nil {
		appointment.Notes = notes
	}

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

// CancelAppointment cancels a live appointment
func (s *AppointmentService) CancelAppointment(ctx context.Context, id uuid.UUID, reason *string) error {
	_, err := s.UpdateStatus(ctx, id, enum.AppointmentStatusCancelled, reason)
	return err
}
