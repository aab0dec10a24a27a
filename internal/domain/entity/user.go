package entity

import "time"

// User is an authenticated identity (admin back-office account).
// Tenant association lives in Membership, not here.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Membership associates a user with a tenant and a role.
// A user may hold memberships in multiple tenants.
type Membership struct {
	ID        string
	UserID    string
	TenantID  string
	Role      string // rbac.RoleStaff | rbac.RoleAdmin | rbac.RoleOwner
	CreatedAt time.Time
	UpdatedAt time.Time
}
