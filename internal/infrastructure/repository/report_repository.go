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

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new medical report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.MedicalReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MedicalReport, error) {
	var report entity.MedicalReport
	err := r.db.WithContext(ctx).
		Scopes(PatientScope(ctx)).
		Preload("Patient").
		First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &report, err
}

func (r *reportRepository) Update(ctx context.Context, report *entity.MedicalReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MedicalReport{}, "id = ?", id).Error
}

func (r *reportRepository) List(ctx context.Context, params *domainRepo.ReportFilterParams) ([]entity.MedicalReport, int64, error) {
	var reports []entity.MedicalReport
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.MedicalReport{}).Scopes(PatientScope(ctx))

	if params.Search != "" {
		query = query.Where("title ILIKE ?", "%"+params.Search+"%")
	}

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.PatientID != nil {
		query = query.Where("patient_id = ?", *params.PatientID)
	}

	if params.VisitID != nil {
		query = query.Where("visit_id = ?", *params.VisitID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Patient").
		Order("created_at DESC").
		Find(&reports).Error

	return reports, total, err
}

func (r *reportRepository) CountByStatus(ctx context.Context, status enum.ReportStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.MedicalReport{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
