package repository

import (
	"context"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
)

// UserRepository is the persistence port for User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// MembershipRepository is the persistence port for tenant memberships.
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.Membership) error
	// ListByUser returns every membership the user holds, oldest first.
	ListByUser(ctx context.Context, userID string) ([]*entity.Membership, error)
	GetByUserAndTenant(ctx context.Context, userID, tenantID string) (*entity.Membership, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Membership, error)
	UpdateRole(ctx context.Context, tenantID, id, role string) error
	Delete(ctx context.Context, tenantID, id string) error
}
