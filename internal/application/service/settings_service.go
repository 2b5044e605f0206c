package service

import (
	"context"

	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/repository"
	"github.com/medicore/hms-api/pkg/apperror"
)

// SettingsService manages the hospital-wide configuration row
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the hospital settings
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.HospitalSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Settings")
	}
	return settings, nil
}

// UpdateSettingsInput represents the settings update input
type UpdateSettingsInput struct {
	HospitalName     *string
	Address          *string
	Phone            *string
	Email            *string
	Currency         *string
	DefaultTaxPct    *float64
	InvoiceDueDays   *int
	InvoicePrefix    *string
	ExpiryWindowDays *int
	DefaultMinStock  *int
}

// UpdateSettings patches the settings row
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.HospitalSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.HospitalName != nil {
		if *input.HospitalName == "" {
			return nil, apperror.NewBadRequestError("Hospital name cannot be empty")
		}
		settings.HospitalName = *input.HospitalName
	}
	if input.Address != nil {
		settings.Address = input.Address
	}
	if input.Phone != nil {
		settings.Phone = input.Phone
	}
	if input.Email != nil {
		settings.Email = input.Email
	}
	if input.Currency != nil {
		if *input.Currency == "" {
			return nil, apperror.NewBadRequestError("Currency cannot be empty")
		}
		settings.Currency = *input.Currency
	}
	if input.DefaultTaxPct != nil {
		if *input.DefaultTaxPct < 0 || *input.DefaultTaxPct > 100 {
			return nil, apperror.NewBadRequestError("Default tax percentage must be between 0 and 100")
		}
		settings.DefaultTaxPct = *input.DefaultTaxPct
	}
	if input.InvoiceDueDays != nil {
		if *input.InvoiceDueDays < 0 {
			return nil, apperror.NewBadRequestError("Invoice due days cannot be negative")
		}
		settings.InvoiceDueDays = *input.InvoiceDueDays
	}
	if input.InvoicePrefix != nil {
		if *input.InvoicePrefix == "" {
			return nil, apperror.NewBadRequestError("Invoice prefix cannot be empty")
		}
		settings.InvoicePrefix = *input.InvoicePrefix
	}
	if input.ExpiryWindowDays != nil {
		if *input.ExpiryWindowDays <= 0 {
			return nil, apperror.NewBadRequestError("Expiry window must be positive")
		}
		settings.ExpiryWindowDays = *input.ExpiryWindowDays
	}
	if input.DefaultMinStock != nil {
		if *input.DefaultMinStock < 0 {
			return nil, apperror.NewBadRequestError("Default minimum stock cannot be negative")
		}
		settings.DefaultMinStock = *input.DefaultMinStock
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
