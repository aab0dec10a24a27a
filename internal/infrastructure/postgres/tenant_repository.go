package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// Ensure TenantRepo implements repository.TenantRepository.
var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo PostgreSQL adapter for the TenantRepository port.
type TenantRepo struct {
	pool *pgxpool.Pool
}

// NewTenantRepository builds the persistence adapter for tenants.
func NewTenantRepository(pool *pgxpool.Pool) *TenantRepo {
	return &TenantRepo{pool: pool}
}

const tenantColumns = `id, slug, name, status, owner_email, created_at, updated_at`

// GetByID returns a tenant by id, (nil, nil) when missing.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetBySlug returns a tenant by slug, (nil, nil) when missing.
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`
	return r.scanOne(ctx, query, slug)
}

// Update updates name, status and owner email. Slug changes are not supported:
// slugs are referenced by routing and sessions.
func (r *TenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		UPDATE tenants SET name = $2, status = $3, owner_email = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		tenant.ID, tenant.Name, tenant.Status, tenant.OwnerEmail, tenant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}

// UpdateStatus transitions a tenant's status. Tenants are never hard-deleted.
func (r *TenantRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE tenants SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update tenant status: %w", err)
	}
	return nil
}

// List returns tenants with pagination.
func (r *TenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tenant
	for rows.Next() {
		var t entity.Tenant
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.Status, &t.OwnerEmail, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *TenantRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Tenant, error) {
	var t entity.Tenant
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.Slug, &t.Name, &t.Status, &t.OwnerEmail, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// Ensure TenantDomainRepo implements repository.TenantDomainRepository.
var _ repository.TenantDomainRepository = (*TenantDomainRepo)(nil)

// TenantDomainRepo PostgreSQL adapter for custom-domain mappings.
type TenantDomainRepo struct {
	pool *pgxpool.Pool
}

// NewTenantDomainRepository builds the persistence adapter for tenant domains.
func NewTenantDomainRepository(pool *pgxpool.Pool) *TenantDomainRepo {
	return &TenantDomainRepo{pool: pool}
}

// GetVerifiedByHostname returns the mapping only when is_verified is true.
func (r *TenantDomainRepo) GetVerifiedByHostname(ctx context.Context, hostname string) (*entity.TenantDomain, error) {
	query := `
		SELECT id, tenant_id, hostname, is_verified, created_at
		FROM tenant_domains WHERE hostname = $1 AND is_verified = true`
	var d entity.TenantDomain
	err := r.pool.QueryRow(ctx, query, hostname).Scan(
		&d.ID, &d.TenantID, &d.Hostname, &d.IsVerified, &d.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant domain: %w", err)
	}
	return &d, nil
}

// ListByTenant returns every domain mapping for the tenant.
func (r *TenantDomainRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.TenantDomain, error) {
	query := `
		SELECT id, tenant_id, hostname, is_verified, created_at
		FROM tenant_domains WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list tenant domains: %w", err)
	}
	defer rows.Close()

	var list []*entity.TenantDomain
	for rows.Next() {
		var d entity.TenantDomain
		if err := rows.Scan(&d.ID, &d.TenantID, &d.Hostname, &d.IsVerified, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant domain: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Create persists a new domain mapping (unverified until DNS is checked).
func (r *TenantDomainRepo) Create(ctx context.Context, d *entity.TenantDomain) error {
	query := `
		INSERT INTO tenant_domains (id, tenant_id, hostname, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, d.ID, d.TenantID, d.Hostname, d.IsVerified, d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("hostname already mapped: %w", err)
		}
		return fmt.Errorf("insert tenant domain: %w", err)
	}
	return nil
}

// Delete removes a domain mapping, scoped to the tenant.
func (r *TenantDomainRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tenant_domains WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete tenant domain: %w", err)
	}
	return nil
}
