package repository

import (
	"context"

	"github.com/medicore/hms-api/internal/domain/entity"
)

// SettingsRepository defines the interface for hospital settings access.
// A single settings row is seeded at startup.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.HospitalSettings, error)
	Update(ctx context.Context, settings *entity.HospitalSettings) error
}
