package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	domainRepo "github.com/medicore/hms-api/internal/domain/repository"
	"gorm.io/gorm"
)

type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *gorm.DB) domainRepo.VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(ctx context.Context, visit *entity.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *visitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Visit, error) {
	var visit entity.Visit
	err := r.db.WithContext(ctx).
		Scopes(PatientScope(ctx)).
		Preload("Patient").
		Preload("Staff.User").
		First(&visit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &visit, err
}

func (r *visitRepository) GetByVisitNo(ctx context.Context, visitNo string) (*entity.Visit, error) {
	var visit entity.Visit
	err := r.db.WithContext(ctx).Scopes(PatientScope(ctx)).First(&visit, "visit_no = ?", visitNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &visit, err
}

func (r *visitRepository) Update(ctx context.Context, visit *entity.Visit) error {
	return r.db.WithContext(ctx).Save(visit).Error
}

func (r *visitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Visit{}, "id = ?", id).Error
}

func (r *visitRepository) List(ctx context.Context, params *domainRepo.VisitFilterParams) ([]entity.Visit, int64, error) {
	var visits []entity.Visit
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Visit{}).Scopes(PatientScope(ctx))

	if params.Search != "" {
		query = query.
			Joins("JOIN patients ON patients.id = visits.patient_id").
			Where("visits.visit_no ILIKE ? OR patients.first_name ILIKE ? OR patients.last_name ILIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("visits.status = ?", *params.Status)
	}

	if params.Type != nil {
		query = query.Where("visits.type = ?", *params.Type)
	}

	if params.PatientID != nil {
		query = query.Where("visits.patient_id = ?", *params.PatientID)
	}

	if params.StaffID != nil {
		query = query.Where("visits.staff_id = ?", *params.StaffID)
	}

	if params.From != nil {
		query = query.Where("visits.admitted_at >= ?", *params.From)
	}

	if params.To != nil {
		query = query.Where("visits.admitted_at <= ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Patient").
		Preload("Staff.User").
		Order("visits.admitted_at DESC").
		Find(&visits).Error

	return visits, total, err
}

func (r *visitRepository) ListAll(ctx context.Context) ([]entity.Visit, error) {
	var visits []entity.Visit
	err := r.db.WithContext(ctx).Order("admitted_at ASC").Find(&visits).Error
	return visits, err
}

func (r *visitRepository) ListOpenByPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Visit, error) {
	var visits []entity.Visit
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND status IN ?", patientID, []enum.VisitStatus{
			enum.VisitStatusAdmitted,
			enum.VisitStatusUnderObservation,
		}).
		Order("admitted_at DESC").
		Find(&visits).Error
	return visits, err
}
