package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/pkg/apperror"
	"github.com/medicore/hms-api/pkg/pagination"
	"github.com/medicore/hms-api/pkg/utils"
)

// VisitService handles admissions and consultations
type VisitService struct {
	visitRepo       repository.VisitRepository
	patientRepo     repository.PatientRepository
	staffRepo       repository.StaffRepository
	appointmentRepo repository.AppointmentRepository
}

// NewVisitService creates a new visit service
func NewVisitService(
	visitRepo repository.VisitRepository,
	patientRepo repository.PatientRepository,
	staffRepo repository.StaffRepository,
	appointmentRepo repository.AppointmentRepository,
) *VisitService {
	return &VisitService{
		visitRepo:       visitRepo,
		patientRepo:     patientRepo,
		staffRepo:       staffRepo,
		appointmentRepo: appointmentRepo,
	}
}

// OpenVisitInput represents the admission input
type OpenVisitInput struct {
	PatientID     uuid.UUID
	StaffID       uuid.UUID
	AppointmentID *uuid.UUID
	Type          enum.VisitType
	Ward          *string
	BedNo         *string
	Diagnosis     *string
	Notes         *string
}

// OpenVisit admits a patient or opens a consultation episode
func (s *VisitService) OpenVisit(ctx context.Context, input *OpenVisitInput) (*entity.Visit, error) {
	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	if patient.Status == enum.PatientStatusDeceased {
		return nil, apperror.NewConflictError("Cannot open a visit for a deceased patient")
	}

	staff, err := s.staffRepo.GetByID(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || !staff.Active {
		return nil, apperror.NewNotFoundError("Staff member")
	}

	if input.AppointmentID != nil {
		appointment, err := s.appointmentRepo.GetByID(ctx, *input.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			return nil, apperror.NewNotFoundError("Appointment")
		}
		if appointment.PatientID != input.PatientID {
			return nil, apperror.NewBadRequestError("Appointment belongs to a different patient")
		}
	}

	// IPD admissions occupy a bed; one open stay per patient
	if input.Type == enum.VisitTypeIPD {
		open, err := s.visitRepo.ListOpenByPatient(ctx, input.PatientID)
		if err != nil {
			return nil, err
		}
		for _, v := range open {
			if v.Type == enum.VisitTypeIPD {
				return nil, apperror.NewConflictError("Patient already has an open admission")
			}
		}
	}

	visit := &entity.Visit{
		VisitNo:       utils.GenerateVisitNo(),
		PatientID:     input.PatientID,
		StaffID:       input.StaffID,
		AppointmentID: input.AppointmentID,
		Type:          input.Type,
		Status:        enum.VisitStatusAdmitted,
		AdmittedAt:    time.Now(),
		Ward:          input.Ward,
		BedNo:         input.BedNo,
		Diagnosis:     input.Diagnosis,
		Notes:         input.Notes,
	}

	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, err
	}

	return s.visitRepo.GetByID(ctx, visit.ID)
}

// GetVisit retrieves a visit by ID
func (s *VisitService) GetVisit(ctx context.Context, id uuid.UUID) (*entity.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperror.NewNotFoundError("Visit")
	}
	return visit, nil
}

// ListVisits lists visits with filtering
func (s *VisitService) ListVisits(ctx context.Context, params *repository.VisitFilterParams) (*pagination.PaginatedResult[entity.Visit], error) {
	visits, total, err := s.visitRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(visits, pag), nil
}

// UpdateVisitInput represents the update visit input
type UpdateVisitInput struct {
	Status    *enum.VisitStatus
	Ward      *string
	BedNo     *string
	Diagnosis *string
	Notes     *string
}

// UpdateVisit updates an open visit's clinical fields
func (s *VisitService) UpdateVisit(ctx context.Context, id uuid.UUID, input *UpdateVisitInput) (*entity.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperror.NewNotFoundError("Visit")
	}
	if visit.Status.IsClosed() {
		return nil, apperror.NewConflictError("Visit is closed")
	}

	if input.Status != nil {
		if input.Status.IsClosed() {
			return nil, apperror.NewBadRequestError("Use the discharge endpoint to close a visit")
		}
		visit.Status = *input.Status
	}
	if input.Ward != nil {
		visit.Ward = input.Ward
	}
	if input.BedNo != nil {
		visit.BedNo = input.BedNo
	}
	if input.Diagnosis != nil {
		visit.Diagnosis = input.Diagnosis
	}
	if input.Notes != nil {
		visit.Notes = input.Notes
	}

	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}

	return visit, nil
}

// Discharge closes a visit. Transfers are recorded the same way with the
// transferred status.
func (s *VisitService) Discharge(ctx context.Context, id uuid.UUID, status enum.VisitStatus, notes *string) (*entity.Visit, error) {
	if !status.IsClosed() {
		return nil, apperror.NewBadRequestError("Discharge status must close the visit")
	}

	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperror.NewNotFoundError("Visit")
	}
	if visit.Status.IsClosed() {
		return nil, apperror.NewConflictError("Visit is already closed")
	}

	now := time.Now()
	visit.Status = status
	visit.DischargedAt = &now
	if notes != nil {
		visit.Notes = notes
	}

	if err := s.visitRepo.Update(ctx, visit); err != nil {
		return nil, err
	}

	return visit, nil
}
