package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// Ensure SettingsRepo implements repository.SettingsRepository.
var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo PostgreSQL adapter for per-tenant business settings.
// Settings is a single row per tenant keyed by tenant_id.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository builds the persistence adapter for settings.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

const settingsColumns = `tenant_id, display_name, logo_url, primary_color, secondary_color,
	minimum_order, contact_email, contact_phone, payout_iban, orders_paused_msg, updated_at`

// GetByTenant returns the tenant's settings row, (nil, nil) when never saved.
func (r *SettingsRepo) GetByTenant(ctx context.Context, tenantID string) (*entity.Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM tenant_settings WHERE tenant_id = $1`
	var s entity.Settings
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(
		&s.TenantID, &s.DisplayName, &s.LogoURL, &s.PrimaryColor, &s.SecondaryColor,
		&s.MinimumOrder, &s.ContactEmail, &s.ContactPhone, &s.PayoutIBAN, &s.OrdersPausedMsg,
		&s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert writes the full settings row for the tenant.
func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.Settings) error {
	query := `
		INSERT INTO tenant_settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tenant_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			logo_url = EXCLUDED.logo_url,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			minimum_order = EXCLUDED.minimum_order,
			contact_email = EXCLUDED.contact_email,
			contact_phone = EXCLUDED.contact_phone,
			payout_iban = EXCLUDED.payout_iban,
			orders_paused_msg = EXCLUDED.orders_paused_msg,
			updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(ctx, query,
		s.TenantID, s.DisplayName, s.LogoURL, s.PrimaryColor, s.SecondaryColor,
		s.MinimumOrder, s.ContactEmail, s.ContactPhone, s.PayoutIBAN, s.OrdersPausedMsg,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
