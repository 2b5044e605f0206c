package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/internal/domain/inventory"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/pkg/apperror"
	"github.com/medicore/hms-api/pkg/pagination"
	"github.com/medicore/hms-api/pkg/utils"
)

// InventoryService handles pharmacy stock
type InventoryService struct {
	medicineRepo        repository.MedicineRepository
	dispenseRepo        repository.DispenseRepository
	patientRepo         repository.PatientRepository
	settingsRepo        repository.SettingsRepository
	notificationService *NotificationService
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	medicineRepo repository.MedicineRepository,
	dispenseRepo repository.DispenseRepository,
	patientRepo repository.PatientRepository,
	settingsRepo repository.SettingsRepository,
	notificationService *NotificationService,
) *InventoryService {
	return &InventoryService{
		medicineRepo:        medicineRepo,
		dispenseRepo:        dispenseRepo,
		patientRepo:         patientRepo,
		settingsRepo:        settingsRepo,
		notificationService: notificationService,
	}
}

// CreateMedicineInput represents the create medicine input
type CreateMedicineInput struct {
	Code         *string
	Name         string
	GenericName  *string
	Category     *string
	BatchNo      *string
	Unit         string
	Quantity     int
	MinThreshold *int
	UnitPrice    float64
	ExpiryDate   time.Time
	Manufacturer *string
}

// CreateMedicine registers a new stock item. A code is generated when the
// caller does not supply one.
func (s *InventoryService) CreateMedicine(ctx context.Context, input *CreateMedicineInput) (*entity.Medicine, error) {
	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}
	if input.UnitPrice < 0 {
		return nil, apperror.NewBadRequestError("Unit price cannot be negative")
	}

	code := utils.GenerateMedicineCode()
	if input.Code != nil && *input.Code != "" {
		code = *input.Code
	}
	existing, err := s.medicineRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A medicine with this code already exists")
	}

	minThreshold, err := s.defaultMinThreshold(ctx, input.MinThreshold)
	if err != nil {
		return nil, err
	}

	unit := input.Unit
	if unit == "" {
		unit = "tablet"
	}

	medicine := &entity.Medicine{
		Code:         code,
		Name:         input.Name,
		GenericName:  input.GenericName,
		Category:     input.Category,
		BatchNo:      input.BatchNo,
		Unit:         unit,
		Quantity:     input.Quantity,
		MinThreshold: minThreshold,
		UnitPrice:    int64(input.UnitPrice * 100),
		ExpiryDate:   input.ExpiryDate,
		Manufacturer: input.Manufacturer,
	}

	if err := s.medicineRepo.Create(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

func (s *InventoryService) defaultMinThreshold(ctx context.Context, override *int) (int, error) {
	if override != nil {
		if *override < 0 {
			return 0, apperror.NewBadRequestError("Minimum threshold cannot be negative")
		}
		return *override, nil
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, err
	}
	return settings.DefaultMinStock, nil
}

// GetMedicine retrieves a medicine by ID
func (s *InventoryService) GetMedicine(ctx context.Context, id uuid.UUID) (*entity.Medicine, error) {
	medicine, err := s.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NewNotFoundError("Medicine")
	}
	return medicine, nil
}

// ListMedicines lists medicines with filtering
func (s *InventoryService) ListMedicines(ctx context.Context, params *repository.MedicineFilterParams) (*pagination.PaginatedResult[entity.Medicine], error) {
	medicines, total, err := s.medicineRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(medicines, pag), nil
}

// UpdateMedicineInput represents the update medicine input
type UpdateMedicineInput struct {
	Name         *string
	GenericName  *string
	Category     *string
	BatchNo      *string
	Unit         *string
	MinThreshold *int
	UnitPrice    *float64
	ExpiryDate   *time.Time
	Manufacturer *string
}

// UpdateMedicine updates descriptive fields. Quantity only moves through
// Restock and Dispense.
func (s *InventoryService) UpdateMedicine(ctx context.Context, id uuid.UUID, input *UpdateMedicineInput) (*entity.Medicine, error) {
	medicine, err := s.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NewNotFoundError("Medicine")
	}

	if input.Name != nil {
		medicine.Name = *input.Name
	}
	if input.GenericName != nil {
		medicine.GenericName = input.GenericName
	}
	if input.Category != nil {
		medicine.Category = input.Category
	}
	if input.BatchNo != nil {
		medicine.BatchNo = input.BatchNo
	}
	if input.Unit != nil {
		medicine.Unit = *input.Unit
	}
	if input.MinThreshold != nil {
		if *input.MinThreshold < 0 {
			return nil, apperror.NewBadRequestError("Minimum threshold cannot be negative")
		}
		medicine.MinThreshold = *input.MinThreshold
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}
		medicine.UnitPrice = int64(*input.UnitPrice * 100)
	}
	if input.ExpiryDate != nil {
		medicine.ExpiryDate = *input.ExpiryDate
	}
	if input.Manufacturer != nil {
		medicine.Manufacturer = input.Manufacturer
	}

	if err := s.medicineRepo.Update(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// DeleteMedicine soft deletes a medicine
func (s *InventoryService) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	medicine, err := s.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if medicine == nil {
		return apperror.NewNotFoundError("Medicine")
	}
	return s.medicineRepo.Delete(ctx, id)
}

// Restock adds stock to a medicine and returns it with the new quantity
func (s *InventoryService) Restock(ctx context.Context, id uuid.UUID, quantity int) (*entity.Medicine, error) {
	if quantity <= 0 {
		return nil, apperror.NewBadRequestError("Restock quantity must be positive")
	}

	medicine, err := s.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NewNotFoundError("Medicine")
	}

	remaining, err := s.medicineRepo.Restock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}

	medicine.Quantity = remaining
	return medicine, nil
}

// DispenseInput represents the dispense input
type DispenseInput struct {
	MedicineID    uuid.UUID
	PatientID     uuid.UUID
	Quantity      int
	Notes         *string
	DispensedByID uuid.UUID
}

// Dispense hands stock out to a patient. The decrement and the dispense
// record commit together; insufficient stock leaves both untouched.
// Expired medicine is never dispensed regardless of quantity on hand.
func (s *InventoryService) Dispense(ctx context.Context, input *DispenseInput) (*entity.DispenseRecord, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Dispense quantity must be positive")
	}

	medicine, err := s.medicineRepo.GetByID(ctx, input.MedicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NewNotFoundError("Medicine")
	}

	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	now := time.Now()
	window, err := s.expiryWindow(ctx)
	if err != nil {
		return nil, err
	}
	if inventory.Classify(medicine.Quantity, medicine.MinThreshold, medicine.ExpiryDate, window, now) == enum.StockStatusExpired {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("%s expired on %s and cannot be dispensed", medicine.Name, medicine.ExpiryDate.Format("2006-01-02")))
	}

	record := &entity.DispenseRecord{
		MedicineID:    input.MedicineID,
		PatientID:     input.PatientID,
		Quantity:      input.Quantity,
		Notes:         input.Notes,
		DispensedByID: input.DispensedByID,
		DispensedAt:   now,
	}

	remaining, err := s.medicineRepo.Dispense(ctx, record)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, apperror.ErrInsufficientStock
		}
		return nil, err
	}

	// Alert only on the crossing, not on every dispense below threshold.
	// medicine.Quantity still holds the pre-dispense count here.
	if remaining <= medicine.MinThreshold && medicine.Quantity > medicine.MinThreshold {
		s.alertLowStock(ctx, medicine, remaining)
	}

	return record, nil
}

func (s *InventoryService) alertLowStock(ctx context.Context, medicine *entity.Medicine, remaining int) {
	if s.notificationService == nil {
		return
	}
	title := fmt.Sprintf("Low stock: %s", medicine.Name)
	body := fmt.Sprintf("%s is down to %d %s (threshold %d). Reorder soon.",
		medicine.Name, remaining, medicine.Unit, medicine.MinThreshold)
	if err := s.notificationService.NotifyRole(ctx, []enum.Role{enum.RoleAdmin}, enum.NotificationKindInventory, title, body, &medicine.ID); err != nil {
		log.Printf("Warning: failed to send low stock alert for %s: %v", medicine.Code, err)
	}
}

// ListLowStock lists medicines at or below their minimum threshold
func (s *InventoryService) ListLowStock(ctx context.Context) ([]entity.Medicine, error) {
	return s.medicineRepo.ListLowStock(ctx)
}

// ListExpiring lists medicines expiring within the configured window
func (s *InventoryService) ListExpiring(ctx context.Context) ([]entity.Medicine, error) {
	window, err := s.expiryWindow(ctx)
	if err != nil {
		return nil, err
	}
	return s.medicineRepo.ListExpiringBefore(ctx, time.Now().Add(window))
}

// StockStatus classifies a medicine using the hospital's expiry window
func (s *InventoryService) StockStatus(ctx context.Context, medicine *entity.Medicine) (enum.StockStatus, error) {
	window, err := s.expiryWindow(ctx)
	if err != nil {
		return enum.StockStatusAvailable, err
	}
	return inventory.Classify(medicine.Quantity, medicine.MinThreshold, medicine.ExpiryDate, window, time.Now()), nil
}

func (s *InventoryService) expiryWindow(ctx context.Context) (time.Duration, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, err
	}
	if settings == nil || settings.ExpiryWindowDays <= 0 {
		return inventory.DefaultExpiryWindow, nil
	}
	return time.Duration(settings.ExpiryWindowDays) * 24 * time.Hour, nil
}

// ListDispenses lists dispense history for a medicine
func (s *InventoryService) ListDispenses(ctx context.Context, medicineID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.DispenseRecord], error) {
	records, total, err := s.dispenseRepo.ListByMedicine(ctx, medicineID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(records, pag), nil
}

// ListPatientDispenses lists medicines dispensed to a patient
func (s *InventoryService) ListPatientDispenses(ctx context.Context, patientID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.DispenseRecord], error) {
	records, total, err := s.dispenseRepo.ListByPatient(ctx, patientID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(records, pag), nil
}
