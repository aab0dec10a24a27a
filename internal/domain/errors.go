package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrNoMembership       = errors.New("user has no tenant membership")
	ErrTenantSelection    = errors.New("tenant selection required")
	ErrConflict           = errors.New("conflict with current state")
	ErrBelowMinimumOrder  = errors.New("order total below tenant minimum")
	ErrOrderingPaused     = errors.New("ordering is paused for this tenant")
)
