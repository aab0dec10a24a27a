package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/rbac"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// MemberUseCase tenant membership management (invite, role change, revoke).
type MemberUseCase struct {
	memberships repository.MembershipRepository
	users       repository.UserRepository
}

// NewMemberUseCase builds the use case.
func NewMemberUseCase(memberships repository.MembershipRepository, users repository.UserRepository) *MemberUseCase {
	return &MemberUseCase{memberships: memberships, users: users}
}

// List returns the tenant's members joined with their user records.
func (uc *MemberUseCase) List(ctx context.Context, tenantID string) ([]*dto.MemberResponse, error) {
	members, err := uc.memberships.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MemberResponse, 0, len(members))
	for _, m := range members {
		user, err := uc.users.GetByID(ctx, m.UserID)
		if err != nil {
			return nil, err
		}
		resp := &dto.MemberResponse{
			ID:        m.ID,
			UserID:    m.UserID,
			Role:      m.Role,
			CreatedAt: m.CreatedAt,
		}
		if user != nil {
			resp.Email = user.Email
			resp.Name = user.Name
		}
		out = append(out, resp)
	}
	return out, nil
}

// Add adds a user to the tenant, creating the user account when the email is
// new. Existing users are attached with the given role.
func (uc *MemberUseCase) Add(ctx context.Context, tenantID string, in dto.AddMemberRequest) (*dto.MemberResponse, error) {
	if in.Email == "" || !rbac.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if len(in.Password) < 8 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		name := in.Name
		if name == "" {
			name = in.Email
		}
		user = &entity.User{
			ID:           uuid.New().String(),
			Email:        in.Email,
			PasswordHash: string(hash),
			Name:         name,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	existing, err := uc.memberships.GetByUserAndTenant(ctx, user.ID, tenantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	m := &entity.Membership{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TenantID:  tenantID,
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.memberships.Create(ctx, m); err != nil {
		return nil, err
	}
	return &dto.MemberResponse{
		ID:        m.ID,
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}, nil
}

// UpdateRole changes a member's role.
func (uc *MemberUseCase) UpdateRole(ctx context.Context, tenantID, membershipID string, in dto.UpdateMemberRequest) error {
	if !rbac.ValidRole(in.Role) {
		return domain.ErrInvalidInput
	}
	return uc.memberships.UpdateRole(ctx, tenantID, membershipID, in.Role)
}

// Remove revokes a membership. The user account stays; only the tenant
// association is removed.
func (uc *MemberUseCase) Remove(ctx context.Context, tenantID, membershipID string) error {
	return uc.memberships.Delete(ctx, tenantID, membershipID)
}
