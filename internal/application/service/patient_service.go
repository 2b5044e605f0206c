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

// PatientService handles the patient register
type PatientService struct {
	patientRepo repository.PatientRepository
	visitRepo   repository.VisitRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repository.PatientRepository, visitRepo repository.VisitRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo, visitRepo: visitRepo}
}

// CreatePatientInput represents the create patient input
type CreatePatientInput struct {
	FirstName        string
	LastName         string
	Gender           enum.Gender
	DateOfBirth      time.Time
	BloodGroup       *string
	Phone            *string
	Email            *string
	Address          *string
	EmergencyContact *string
	EmergencyPhone   *string
	Allergies        *string
}

// CreatePatient registers a walk-in patient at the front desk
func (s *PatientService) CreatePatient(ctx context.Context, input *CreatePatientInput) (*entity.Patient, error) {
	if input.DateOfBirth.After(time.Now()) {
		return nil, apperror.NewBadRequestError("Date of birth cannot be in the future")
	}

	patient := &entity.Patient{
		PatientNo:        utils.GeneratePatientNo(),
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Gender:           input.Gender,
		DateOfBirth:      input.DateOfBirth,
		BloodGroup:       input.BloodGroup,
		Phone:            input.Phone,
		Email:            input.Email,
		Address:          input.Address,
		EmergencyContact: input.EmergencyContact,
		EmergencyPhone:   input.EmergencyPhone,
		Allergies:        input.Allergies,
		Status:           enum.PatientStatusActive,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// GetPatient retrieves a patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// GetPatientByNo retrieves a patient by registration number
func (s *PatientService) GetPatientByNo(ctx context.Context, patientNo string) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByPatientNo(ctx, patientNo)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// GetPatientForUser resolves the patient record linked to a patient account
func (s *PatientService) GetPatientForUser(ctx context.Context, userID uuid.UUID) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// ListPatients lists patients with filtering
func (s *PatientService) ListPatients(ctx context.Context, params *repository.PatientFilterParams) (*pagination.PaginatedResult[entity.Patient], error) {
	patients, total, err := s.patientRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(patients, pag), nil
}

// UpdatePatientInput represents the update patient input
type UpdatePatientInput struct {
	FirstName        *string
	LastName         *string
	Gender           *enum.Gender
	DateOfBirth      *time.Time
	BloodGroup       *string
	Phone            *string
	Email            *string
	Address          *string
	EmergencyContact *string
	EmergencyPhone   *string
	Allergies        *string
	Status           *enum.PatientStatus
}

// UpdatePatient updates patient demographics
func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, input *UpdatePatientInput) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	if input.FirstName != nil {
		patient.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		patient.LastName = *input.LastName
	}
	if input.Gender != nil {
		patient.Gender = *input.Gender
	}
	if input.DateOfBirth != nil {
		if input.DateOfBirth.After(time.Now()) {
			return nil, apperror.NewBadRequestError("Date of birth cannot be in the future")
		}
		patient.DateOfBirth = *input.DateOfBirth
	}
	if input.BloodGroup != nil {
		patient.BloodGroup = input.BloodGroup
	}
	if input.Phone != nil {
		patient.Phone = input.Phone
	}
	if input.Email != nil {
		patient.Email = input.Email
	}
	if input.Address != nil {
		patient.Address = input.Address
	}
	if input.EmergencyContact != nil {
		patient.EmergencyContact = input.EmergencyContact
	}
	if input.EmergencyPhone != nil {
		patient.EmergencyPhone = input.EmergencyPhone
	}
	if input.Allergies != nil {
		patient.Allergies = input.Allergies
	}
	if input.Status != nil {
		patient.Status = *input.Status
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// DeletePatient soft-deletes a patient. Patients with open visits cannot
// be removed.
func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return apperror.NewNotFoundError("Patient")
	}

	openVisits, err := s.visitRepo.ListOpenByPatient(ctx, id)
	if err != nil {
		return err
	}
	if len(openVisits) > 0 {
		return apperror.NewConflictError("Patient has open visits and cannot be deleted")
	}

	return s.patientRepo.Delete(ctx, id)
}
