package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	domainRepo "github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/pkg/pagination"
	"gorm.io/gorm"
)

type medicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository creates a new medicine repository
func NewMedicineRepository(db *gorm.DB) domainRepo.MedicineRepository {
	return &medicineRepository{db: db}
}

func (r *medicineRepository) Create(ctx context.Context, medicine *entity.Medicine) error {
	return r.db.WithContext(ctx).Create(medicine).Error
}

func (r *medicineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error) {
	var medicine entity.Medicine
	err := r.db.WithContext(ctx).First(&medicine, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &medicine, err
}

func (r *medicineRepository) GetByCode(ctx context.Context, code string) (*entity.Medicine, error) {
	var medicine entity.Medicine
	err := r.db.WithContext(ctx).First(&medicine, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &medicine, err
}

func (r *medicineRepository) Update(ctx context.Context, medicine *entity.Medicine) error {
	return r.db.WithContext(ctx).Save(medicine).Error
}

func (r *medicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Medicine{}, "id = ?", id).Error
}

func (r *medicineRepository) List(ctx context.Context, params *domainRepo.MedicineFilterParams) ([]entity.Medicine, int64, error) {
	var medicines []entity.Medicine
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Medicine{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR generic_name ILIKE ? OR code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.LowStock {
		query = query.Where("quantity <= min_threshold")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&medicines).Error

	return medicines, total, err
}

func (r *medicineRepository) ListAll(ctx context.Context) ([]entity.Medicine, error) {
	var medicines []entity.Medicine
	err := r.db.WithContext(ctx).Order("name ASC").Find(&medicines).Error
	return medicines, err
}

func (r *medicineRepository) ListLowStock(ctx context.Context) ([]entity.Medicine, error) {
	var medicines []entity.Medicine
	err := r.db.WithContext(ctx).
		Where("quantity <= min_threshold").
		Order("quantity ASC").
		Find(&medicines).Error
	return medicines, err
}

func (r *medicineRepository) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]entity.Medicine, error) {
	var medicines []entity.Medicine
	err := r.db.WithContext(ctx).
		Where("expiry_date < ?", cutoff).
		Order("expiry_date ASC").
		Find(&medicines).Error
	return medicines, err
}

// Restock atomically increments the quantity and returns the new value.
func (r *medicineRepository) Restock(ctx context.Context, id uuid.UUID, quantity int) (int, error) {
	var remaining int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Medicine{}).
			Where("id = ?", id).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var medicine entity.Medicine
		if err := tx.Select("quantity").First(&medicine, "id = ?", id).Error; err != nil {
			return err
		}
		remaining = medicine.Quantity
		return nil
	})
	return remaining, err
}

// Dispense performs the conditional decrement and inserts the dispense
// record in one transaction:
//
//	UPDATE medicines SET quantity = quantity - n WHERE id = ? AND quantity >= n
//
// Zero rows affected means insufficient stock; the transaction rolls back
// and no record is written.
func (r *medicineRepository) Dispense(ctx context.Context, record *entity.DispenseRecord) (int, error) {
	var remaining int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Medicine{}).
			Where("id = ? AND quantity >= ?", record.MedicineID, record.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", record.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrInsufficientStock
		}

		if err := tx.Create(record).Error; err != nil {
			return err
		}

		var medicine entity.Medicine
		if err := tx.Select("quantity").First(&medicine, "id = ?", record.MedicineID).Error; err != nil {
			return err
		}
		remaining = medicine.Quantity
		return nil
	})
	return remaining, err
}

type dispenseRepository struct {
	db *gorm.DB
}

// NewDispenseRepository creates a new dispense record repository
func NewDispenseRepository(db *gorm.DB) domainRepo.DispenseRepository {
	return &dispenseRepository{db: db}
}

func (r *dispenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DispenseRecord, error) {
	var record entity.DispenseRecord
	err := r.db.WithContext(ctx).Preload("Medicine").First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *dispenseRepository) ListByMedicine(ctx context.Context, medicineID uuid.UUID, params *pagination.PaginationParams) ([]entity.DispenseRecord, int64, error) {
	return r.list(ctx, "medicine_id = ?", medicineID, params)
}

func (r *dispenseRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, params *pagination.PaginationParams) ([]entity.DispenseRecord, int64, error) {
	return r.list(ctx, "patient_id = ?", patientID, params)
}

func (r *dispenseRepository) list(ctx context.Context, cond string, id uuid.UUID, params *pagination.PaginationParams) ([]entity.DispenseRecord, int64, error) {
	var records []entity.DispenseRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DispenseRecord{}).Where(cond, id)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Medicine").
		Order("dispensed_at DESC").
		Find(&records).Error

	return records, total, err
}
