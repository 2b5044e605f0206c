package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/pkg/apperror"
)

func newTestInventoryService() (*InventoryService, *mockMedicineRepo, *mockPatientRepo) {
	medicineRepo := newMockMedicineRepo()
	patientRepo := newMockPatientRepo()
	svc := NewInventoryService(
		medicineRepo,
		&mockDispenseRepo{medicineRepo: medicineRepo},
		patientRepo,
		newMockSettingsRepo(),
		nil,
	)
	return svc, medicineRepo, patientRepo
}

func seedMedicine(repo *mockMedicineRepo, quantity int) *entity.Medicine {
	med := &entity.Medicine{
		Code:         "MED-TEST01",
		Name:         "Paracetamol 500mg",
		Unit:         "tablet",
		Quantity:     quantity,
		MinThreshold: 10,
		UnitPrice:    500,
		ExpiryDate:   time.Now().AddDate(1, 0, 0),
	}
	repo.Create(context.Background(), med)
	return med
}

func TestCreateMedicine_DefaultsFromSettings(t *testing.T) {
	svc, _, _ := newTestInventoryService()

	med, err := svc.CreateMedicine(context.Background(), &CreateMedicineInput{
		Name:       "Amoxicillin 250mg",
		Quantity:   100,
		UnitPrice:  12.50,
		ExpiryDate: time.Now().AddDate(1, 0, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if med.MinThreshold != 10 {
		t.Errorf("expected threshold from settings (10), got %d", med.MinThreshold)
	}
	if med.Code == "" {
		t.Error("expected a generated code")
	}
	if med.UnitPrice != 1250 {
		t.Errorf("expected unit price 1250 cents, got %d", med.UnitPrice)
	}
	if med.Unit != "tablet" {
		t.Errorf("expected default unit tablet, got %s", med.Unit)
	}
}

func TestCreateMedicine_DuplicateCode(t *testing.T) {
	svc, medicineRepo, _ := newTestInventoryService()
	seedMedicine(medicineRepo, 50)

	code := "MED-TEST01"
	_, err := svc.CreateMedicine(context.Background(), &CreateMedicineInput{
		Code:       &code,
		Name:       "Other",
		ExpiryDate: time.Now().AddDate(1, 0, 0),
	})
	if err == nil {
		t.Error("expected error for duplicate code")
	}
}

func TestRestock(t *testing.T) {
	svc, medicineRepo, _ := newTestInventoryService()
	med := seedMedicine(medicineRepo, 5)

	updated, err := svc.Restock(context.Background(), med.ID, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 25 {
		t.Errorf("expected quantity 25, got %d", updated.Quantity)
	}
}

func TestRestock_NonPositiveRejected(t *testing.T) {
	svc, medicineRepo, _ := newTestInventoryService()
	med := seedMedicine(medicineRepo, 5)

	if _, err := svc.Restock(context.Background(), med.ID, 0); err == nil {
		t.Error("expected error for zero restock")
	}
	if _, err := svc.Restock(context.Background(), med.ID, -3); err == nil {
		t.Error("expected error for negative restock")
	}
}

func TestDispense(t *testing.T) {
	svc, medicineRepo, patientRepo := newTestInventoryService()
	med := seedMedicine(medicineRepo, 50)
	patient := seedPatient(patientRepo)

	record, err := svc.Dispense(context.Background(), &DispenseInput{
		MedicineID:    med.ID,
		PatientID:     patient.ID,
		Quantity:      8,
		DispensedByID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Quantity != 8 {
		t.Errorf("expected dispensed quantity 8, got %d", record.Quantity)
	}

	remaining, _ := medicineRepo.GetByID(context.Background(), med.ID)
	if remaining.Quantity != 42 {
		t.Errorf("expected 42 left in stock, got %d", remaining.Quantity)
	}
	if len(medicineRepo.dispenses) != 1 {
		t.Errorf("expected 1 dispense record, got %d", len(medicineRepo.dispenses))
	}
}

func TestDispense_InsufficientStock(t *testing.T) {
	svc, medicineRepo, patientRepo := newTestInventoryService()
	med := seedMedicine(medicineRepo, 3)
	patient := seedPatient(patientRepo)

	_, err := svc.Dispense(context.Background(), &DispenseInput{
		MedicineID:    med.ID,
		PatientID:     patient.ID,
		Quantity:      5,
		DispensedByID: uuid.New(),
	})
	if !errors.Is(err, apperror.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}

	// nothing written on failure
	untouched, _ := medicineRepo.GetByID(context.Background(), med.ID)
	if untouched.Quantity != 3 {
		t.Errorf("expected stock unchanged (3), got %d", untouched.Quantity)
	}
	if len(medicineRepo.dispenses) != 0 {
		t.Errorf("expected no dispense records, got %d", len(medicineRepo.dispenses))
	}
}

func TestDispense_ExpiredRejected(t *testing.T) {
	svc, medicineRepo, patientRepo := newTestInventoryService()
	med := seedMedicine(medicineRepo, 50)
	med.ExpiryDate = time.Now().AddDate(0, 0, -1)
	patient := seedPatient(patientRepo)

	_, err := svc.Dispense(context.Background(), &DispenseInput{
		MedicineID:    med.ID,
		PatientID:     patient.ID,
		Quantity:      1,
		DispensedByID: uuid.New(),
	})
	if err == nil {
		t.Error("expected error for dispensing expired medicine")
	}
}

func TestStockStatus(t *testing.T) {
	svc, medicineRepo, _ := newTestInventoryService()

	cases := []struct {
		name     string
		quantity int
		expiry   time.Time
		want     enum.StockStatus
	}{
		{"available", 100, time.Now().AddDate(1, 0, 0), enum.StockStatusAvailable},
		{"low stock", 5, time.Now().AddDate(1, 0, 0), enum.StockStatusLowStock},
		{"out of stock", 0, time.Now().AddDate(1, 0, 0), enum.StockStatusOutOfStock},
		{"expiring soon", 100, time.Now().AddDate(0, 0, 10), enum.StockStatusExpiringSoon},
		{"expired", 100, time.Now().AddDate(0, 0, -1), enum.StockStatusExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			med := seedMedicine(medicineRepo, tc.quantity)
			med.ExpiryDate = tc.expiry

			got, err := svc.StockStatus(context.Background(), med)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDispense_LowStockAlertFiresOnCrossingOnly(t *testing.T) {
	medicineRepo := newMockMedicineRepo()
	patientRepo := newMockPatientRepo()
	notificationRepo := newMockNotificationRepo()
	userRepo := newMockUserRepo()
	userRepo.Create(context.Background(), &entity.User{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "admin@medicore.test",
		Role:      enum.RoleAdmin,
		Active:    true,
	})

	svc := NewInventoryService(
		medicineRepo,
		&mockDispenseRepo{medicineRepo: medicineRepo},
		patientRepo,
		newMockSettingsRepo(),
		NewNotificationService(notificationRepo, userRepo, nil),
	)

	med := seedMedicine(medicineRepo, 12) // threshold 10
	patient := seedPatient(patientRepo)

	// 12 -> 9 crosses the threshold: exactly one alert
	if _, err := svc.Dispense(context.Background(), &DispenseInput{
		MedicineID:    med.ID,
		PatientID:     patient.ID,
		Quantity:      3,
		DispensedByID: uuid.New(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notificationRepo.notifications) != 1 {
		t.Fatalf("expected 1 low-stock alert after crossing, got %d", len(notificationRepo.notifications))
	}

	// 9 -> 7 stays below the threshold: no further alert
	if _, err := svc.Dispense(context.Background(), &DispenseInput{
		MedicineID:    med.ID,
		PatientID:     patient.ID,
		Quantity:      2,
		DispensedByID: uuid.New(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notificationRepo.notifications) != 1 {
		t.Errorf("expected no repeat alert below threshold, got %d total", len(notificationRepo.notifications))
	}
}
