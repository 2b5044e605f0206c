package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/pkg/apperror"
	"github.com/medicore/hms-api/pkg/pagination"
	"github.com/medicore/hms-api/pkg/utils"
)

// StaffService handles staff profiles
type StaffService struct {
	staffRepo repository.StaffRepository
	userRepo  repository.UserRepository
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repository.StaffRepository, userRepo repository.UserRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo, userRepo: userRepo}
}

// CreateStaffInput represents the create staff input
type CreateStaffInput struct {
	UserID          uuid.UUID
	Department      string
	Designation     string
	Specialization  *string
	LicenseNo       *string
	ConsultationFee float64
	JoiningDate     time.Time
}

// CreateStaff attaches a staff profile to an existing account
func (s *StaffService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.Staff, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	if !user.Role.IsStaff() {
		return nil, apperror.NewBadRequestError("User does not hold a staff role")
	}

	existing, err := s.staffRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("User already has a staff profile")
	}

	if input.ConsultationFee < 0 {
		return nil, apperror.NewBadRequestError("Consultation fee cannot be negative")
	}

	staff := &entity.Staff{
		StaffNo:         utils.GenerateStaffNo(),
		UserID:          input.UserID,
		Department:      input.Department,
		Designation:     input.Designation,
		Specialization:  input.Specialization,
		LicenseNo:       input.LicenseNo,
		ConsultationFee: int64(input.ConsultationFee * 100),
		JoiningDate:     input.JoiningDate,
		Active:          true,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	return s.staffRepo.GetByID(ctx, staff.ID)
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff member")
	}
	return staff, nil
}

// ListStaff lists staff with filtering
func (s *StaffService) ListStaff(ctx context.Context, params *repository.StaffFilterParams) (*pagination.PaginatedResult[entity.Staff], error) {
	staff, total, err := s.staffRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(staff, pag), nil
}

// ListDoctors returns active doctors for appointment booking
func (s *StaffService) ListDoctors(ctx context.Context) ([]entity.Staff, error) {
	return s.staffRepo.ListDoctors(ctx)
}

// UpdateStaffInput represents the update staff input
type UpdateStaffInput struct {
	Department      *string
	Designation     *string
	Specialization  *string
	LicenseNo       *string
	ConsultationFee *float64
	Active          *bool
}

// UpdateStaff updates a staff profile
func (s *StaffService) UpdateStaff(ctx context.Context, id uuid.UUID, input *UpdateStaffInput) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff member")
	}

	if input.Department != nil {
		staff.Department = *input.Department
	}
	if input.Designation != nil {
		staff.Designation = *input.Designation
	}
	if input.Specialization != nil {
		staff.Specialization = input.Specialization
	}
	if input.LicenseNo != nil {
		staff.LicenseNo = input.LicenseNo
	}
	if input.ConsultationFee != nil {
		if *input.ConsultationFee < 0 {
			return nil, apperror.NewBadRequestError("Consultation fee cannot be negative")
		}
		staff.ConsultationFee = int64(*input.ConsultationFee * 100)
	}
	if input.Active != nil {
		staff.Active = *input.Active
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

// DeleteStaff soft-deletes a staff profile
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if staff == nil {
		return apperror.NewNotFoundError("Staff member")
	}
	return s.staffRepo.Delete(ctx, id)
}
