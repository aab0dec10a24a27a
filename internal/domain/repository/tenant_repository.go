package repository

import (
	"context"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
)

// TenantRepository is the persistence port for Tenant (DIP).
// Lookups return (nil, nil) when no row matches.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
}

// TenantDomainRepository is the persistence port for custom-domain mappings.
type TenantDomainRepository interface {
	// GetVerifiedByHostname returns the mapping for hostname only when
	// is_verified is true; (nil, nil) otherwise.
	GetVerifiedByHostname(ctx context.Context, hostname string) (*entity.TenantDomain, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.TenantDomain, error)
	Create(ctx context.Context, d *entity.TenantDomain) error
	Delete(ctx context.Context, tenantID, id string) error
}
