package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/medicore/hms-api/internal/domain/inventory"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/internal/domain/stats"
	"github.com/medicore/hms-api/internal/infrastructure/cache"
)

const dashboardCacheKey = "hms:dashboard"

// DashboardService aggregates operational statistics for the admin dashboard
type DashboardService struct {
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	visitRepo       repository.VisitRepository
	invoiceRepo     repository.InvoiceRepository
	medicineRepo    repository.MedicineRepository
	settingsRepo    repository.SettingsRepository
	cache           *cache.Cache
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	visitRepo repository.VisitRepository,
	invoiceRepo repository.InvoiceRepository,
	medicineRepo repository.MedicineRepository,
	settingsRepo repository.SettingsRepository,
	c *cache.Cache,
) *DashboardService {
	return &DashboardService{
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		visitRepo:       visitRepo,
		invoiceRepo:     invoiceRepo,
		medicineRepo:    medicineRepo,
		settingsRepo:    settingsRepo,
		cache:           c,
	}
}

// DashboardSummary is the combined dashboard payload
type DashboardSummary struct {
	Patients     stats.PatientSummary     `json:"patients"`
	Appointments stats.AppointmentSummary `json:"appointments"`
	Visits       stats.VisitSummary       `json:"visits"`
	Billing      stats.BillingSummary     `json:"billing"`
	Inventory    stats.InventorySummary   `json:"inventory"`
	GeneratedAt  time.Time                `json:"generated_at"`
}

// GetSummary returns the dashboard aggregates, served from Redis when a
// fresh copy exists.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	if s.cache != nil {
		var cached DashboardSummary
		err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("Warning: dashboard cache read failed: %v", err)
		}
	}

	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary); err != nil {
			log.Printf("Warning: dashboard cache write failed: %v", err)
		}
	}
	return summary, nil
}

func (s *DashboardService) buildSummary(ctx context.Context) (*DashboardSummary, error) {
	now := time.Now()

	patients, err := s.patientRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	visits, err := s.visitRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	medicines, err := s.medicineRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	window := inventory.DefaultExpiryWindow
	if settings, err := s.settingsRepo.Get(ctx); err == nil && settings != nil && settings.ExpiryWindowDays > 0 {
		window = time.Duration(settings.ExpiryWindowDays) * 24 * time.Hour
	}

	return &DashboardSummary{
		Patients:     stats.SummarizePatients(patients),
		Appointments: stats.SummarizeAppointments(appointments, now),
		Visits:       stats.SummarizeVisits(visits, now),
		Billing:      stats.SummarizeInvoices(invoices, now),
		Inventory:    stats.SummarizeMedicines(medicines, window, now),
		GeneratedAt:  now,
	}, nil
}

// Refresh rebuilds the dashboard aggregates, bypassing the cache
func (s *DashboardService) Refresh(ctx context.Context) (*DashboardSummary, error) {
	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary); err != nil {
			log.Printf("Warning: dashboard cache write failed: %v", err)
		}
	}
	return summary, nil
}
