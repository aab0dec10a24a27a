package repository

import (
	"context"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
)

// SettingsRepository is the persistence port for per-tenant business settings.
type SettingsRepository interface {
	GetByTenant(ctx context.Context, tenantID string) (*entity.Settings, error)
	// Upsert writes the full settings row for the tenant.
	Upsert(ctx context.Context, s *entity.Settings) error
}
