// Package auth implements the JWT-backed admin session: password login,
// membership verification, session checks and logout. The legacy cookie
// session lives in the http layer; both feed the same authorization code
// through the http.AdminIdentity capability.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/rbac"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
	"github.com/caterkit/caterkit-api/pkg/jwt"
	"github.com/caterkit/caterkit-api/pkg/slug"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret            string
	AccessExpMinutes  int
	RefreshExpMinutes int
	Issuer            string
}

// Identity is a fully verified admin identity: an authenticated user plus
// one confirmed tenant membership.
type Identity struct {
	User       *entity.User
	TenantID   string
	TenantSlug string
	Role       string
}

// UseCase admin authentication use cases.
type UseCase struct {
	users       repository.UserRepository
	memberships repository.MembershipRepository
	tenants     repository.TenantRepository
	jwtCfg      JWTConfig
}

// New builds the auth use case.
func New(users repository.UserRepository, memberships repository.MembershipRepository, tenants repository.TenantRepository, jwtCfg JWTConfig) *UseCase {
	if jwtCfg.AccessExpMinutes <= 0 {
		jwtCfg.AccessExpMinutes = 60
	}
	if jwtCfg.RefreshExpMinutes <= 0 {
		jwtCfg.RefreshExpMinutes = 60 * 24 * 7
	}
	return &UseCase{users: users, memberships: memberships, tenants: tenants, jwtCfg: jwtCfg}
}

// Login verifies credentials and at least one tenant membership, then issues
// the access/refresh token pair. A user may authenticate and still be refused:
// zero memberships yields ErrNoMembership before any token is issued, so no
// session ever exists for such a user.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}

	membership, tenant, err := uc.activeMembership(ctx, user.ID, in.TenantSlug)
	if err != nil {
		return nil, err
	}

	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, membership.TenantID, tenant.Slug, membership.Role, uc.jwtCfg.Issuer, uc.jwtCfg.AccessExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, membership.TenantID, tenant.Slug, membership.Role, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Success:      true,
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(user),
		TenantSlug:   tenant.Slug,
		Role:         membership.Role,
	}, nil
}

// GetUser resolves the caller's identity from an access token.
// Any validation failure (expired, missing, malformed) returns (nil, nil, nil)
// rather than an error: "no user" is an outcome, not an exception.
func (uc *UseCase) GetUser(ctx context.Context, accessToken string) (*entity.User, *jwt.Claims, error) {
	if accessToken == "" {
		return nil, nil, nil
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, accessToken)
	if err != nil {
		return nil, nil, nil
	}
	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, nil, nil
	}
	return user, claims, nil
}

// GetMemberships returns every tenant membership the user holds.
func (uc *UseCase) GetMemberships(ctx context.Context, userID string) ([]*entity.Membership, error) {
	return uc.memberships.ListByUser(ctx, userID)
}

// RequireAdmin composes GetUser and a live membership check against the
// token's tenant. The membership is re-read so a revoked or demoted user is
// locked out as soon as the change lands, not at token expiry.
func (uc *UseCase) RequireAdmin(ctx context.Context, accessToken string) (*Identity, error) {
	user, claims, err := uc.GetUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	m, err := uc.memberships.GetByUserAndTenant(ctx, user.ID, claims.TenantID)
	if err != nil {
		return nil, err
	}
	if m == nil || !rbac.ValidRole(m.Role) {
		return nil, domain.ErrNoMembership
	}
	return &Identity{
		User:       user,
		TenantID:   m.TenantID,
		TenantSlug: claims.TenantSlug,
		Role:       m.Role,
	}, nil
}

// Refresh validates a refresh token and issues a fresh pair, re-verifying the
// membership so revocation takes effect on rotation.
func (uc *UseCase) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	identity, err := uc.RequireAdmin(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, identity.User.ID, identity.TenantID, identity.TenantSlug, identity.Role, uc.jwtCfg.Issuer, uc.jwtCfg.AccessExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, identity.User.ID, identity.TenantID, identity.TenantSlug, identity.Role, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Success:      true,
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(identity.User),
		TenantSlug:   identity.TenantSlug,
		Role:         identity.Role,
	}, nil
}

// VerifyPassword checks credentials only, with no membership requirement.
// The legacy single-tenant session is created on a bare password check.
func (uc *UseCase) VerifyPassword(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// TenantBySlug resolves an active tenant for the legacy session cookie.
func (uc *UseCase) TenantBySlug(ctx context.Context, s string) (*entity.Tenant, error) {
	if !slug.Valid(s) {
		return nil, domain.ErrTenantNotFound
	}
	tenant, err := uc.tenants.GetBySlug(ctx, s)
	if err != nil {
		return nil, err
	}
	if tenant == nil || !tenant.IsActive() {
		return nil, domain.ErrTenantNotFound
	}
	return tenant, nil
}

// activeMembership picks the membership to act under. Memberships are a set;
// with more than one, the caller must name a tenant slug explicitly.
func (uc *UseCase) activeMembership(ctx context.Context, userID, tenantSlug string) (*entity.Membership, *entity.Tenant, error) {
	list, err := uc.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if len(list) == 0 {
		return nil, nil, domain.ErrNoMembership
	}

	if tenantSlug != "" {
		tenant, err := uc.tenants.GetBySlug(ctx, tenantSlug)
		if err != nil {
			return nil, nil, err
		}
		if tenant == nil || !tenant.IsActive() {
			return nil, nil, domain.ErrNoMembership
		}
		for _, m := range list {
			if m.TenantID == tenant.ID {
				return m, tenant, nil
			}
		}
		return nil, nil, domain.ErrNoMembership
	}

	if len(list) > 1 {
		return nil, nil, domain.ErrTenantSelection
	}

	tenant, err := uc.tenants.GetByID(ctx, list[0].TenantID)
	if err != nil {
		return nil, nil, err
	}
	if tenant == nil || !tenant.IsActive() {
		return nil, nil, domain.ErrNoMembership
	}
	return list[0], tenant, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
