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

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) domainRepo.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).Preload("User").First(&staff, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).Preload("User").First(&staff, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) GetByStaffNo(ctx context.Context, staffNo string) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).Preload("User").First(&staff, "staff_no = ?", staffNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Staff{}, "id = ?", id).Error
}

func (r *staffRepository) List(ctx context.Context, params *domainRepo.StaffFilterParams) ([]entity.Staff, int64, error) {
	var staff []entity.Staff
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Staff{})

	if params.Search != "" {
		query = query.
			Joins("JOIN users ON users.id = staff.user_id").
			Where("users.first_name ILIKE ? OR users.last_name ILIKE ? OR staff.staff_no ILIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Department != "" {
		query = query.Where("staff.department = ?", params.Department)
	}

	if params.Designation != "" {
		query = query.Where("staff.designation = ?", params.Designation)
	}

	if params.ActiveOnly {
		query = query.Where("staff.active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("User").
		Order("staff.created_at DESC").
		Find(&staff).Error

	return staff, total, err
}

func (r *staffRepository) ListDoctors(ctx context.Context) ([]entity.Staff, error) {
	var staff []entity.Staff
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = staff.user_id").
		Where("users.role = ? AND staff.active = ?", enum.RoleDoctor, true).
		Preload("User").
		Order("users.first_name ASC").
		Find(&staff).Error
	return staff, err
}
