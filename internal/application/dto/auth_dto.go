package dto

import "time"

// LoginRequest admin login credentials. TenantSlug selects the active tenant
// when the user holds more than one membership.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	TenantSlug string `json:"tenantSlug,omitempty"`
}

// UserResponse public representation of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse successful admin login: tokens plus resolved membership.
type LoginResponse struct {
	Success      bool         `json:"success"`
	AccessToken  string       `json:"-"` // transported via cookie, not body
	RefreshToken string       `json:"-"`
	CSRFToken    string       `json:"-"`
	User         UserResponse `json:"user"`
	TenantSlug   string       `json:"tenantSlug"`
	Role         string       `json:"role"`
}

// SessionResponse session-check endpoint body.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	TenantSlug    string        `json:"tenantSlug,omitempty"`
	Role          string        `json:"role,omitempty"`
	User          *UserResponse `json:"user,omitempty"`
}

// MemberResponse one tenant membership row.
type MemberResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AddMemberRequest invite/add a user to the tenant.
type AddMemberRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"` // initial password for a new user
	Role     string `json:"role"`
}

// UpdateMemberRequest role change.
type UpdateMemberRequest struct {
	Role string `json:"role"`
}
