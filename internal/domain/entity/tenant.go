package entity

import "time"

// Tenant statuses. Tenants are never hard-deleted; status transitions instead.
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
	TenantStatusCancelled = "cancelled"
)

// Tenant represents one catering business on the platform, the unit of data isolation.
// Only active tenants may be resolved for routing or accept orders.
type Tenant struct {
	ID         string
	Slug       string // URL-safe, unique, used for routing and lookup
	Name       string
	Status     string // active | suspended | cancelled
	OwnerEmail string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive reports whether the tenant may serve traffic.
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// TenantDomain maps a verified external hostname to a tenant.
// Only rows with IsVerified are honored during resolution.
type TenantDomain struct {
	ID         string
	TenantID   string
	Hostname   string // unique; one hostname maps to at most one tenant
	IsVerified bool
	CreatedAt  time.Time
}
