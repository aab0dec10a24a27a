package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/caterkit/caterkit-api/internal/application/auth"
	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/rbac"
	pkgjwt "github.com/caterkit/caterkit-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error { return nil }
func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.byID[id], nil
}
func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserRepo) Update(context.Context, *entity.User) error { return nil }

type fakeMembershipRepo struct {
	byUser map[string][]*entity.Membership
}

func (f *fakeMembershipRepo) Create(context.Context, *entity.Membership) error { return nil }
func (f *fakeMembershipRepo) ListByUser(_ context.Context, userID string) ([]*entity.Membership, error) {
	return f.byUser[userID], nil
}
func (f *fakeMembershipRepo) GetByUserAndTenant(_ context.Context, userID, tenantID string) (*entity.Membership, error) {
	for _, m := range f.byUser[userID] {
		if m.TenantID == tenantID {
			return m, nil
		}
	}
	return nil, nil
}
func (f *fakeMembershipRepo) ListByTenant(context.Context, string) ([]*entity.Membership, error) {
	return nil, nil
}
func (f *fakeMembershipRepo) UpdateRole(context.Context, string, string, string) error { return nil }
func (f *fakeMembershipRepo) Delete(context.Context, string, string) error             { return nil }

type fakeTenantRepo struct {
	bySlug map[string]*entity.Tenant
	byID   map[string]*entity.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return f.byID[id], nil
}
func (f *fakeTenantRepo) GetBySlug(_ context.Context, slug string) (*entity.Tenant, error) {
	return f.bySlug[slug], nil
}
func (f *fakeTenantRepo) Update(context.Context, *entity.Tenant) error       { return nil }
func (f *fakeTenantRepo) UpdateStatus(context.Context, string, string) error { return nil }
func (f *fakeTenantRepo) List(context.Context, int, int) ([]*entity.Tenant, error) {
	return nil, nil
}

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testPassword = "correct-horse-battery"
)

func hashOf(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func fixture(t *testing.T) (*auth.UseCase, *fakeUserRepo, *fakeMembershipRepo, *fakeTenantRepo) {
	t.Helper()
	user := &entity.User{
		ID:           "u-1",
		Email:        "admin@motokitchen.nl",
		PasswordHash: hashOf(t, testPassword),
		Name:         "Admin",
		Status:       "active",
		CreatedAt:    time.Now(),
	}
	moto := &entity.Tenant{ID: "t-moto", Slug: "motokitchen", Status: entity.TenantStatusActive}
	users := &fakeUserRepo{
		byEmail: map[string]*entity.User{user.Email: user},
		byID:    map[string]*entity.User{user.ID: user},
	}
	members := &fakeMembershipRepo{byUser: map[string][]*entity.Membership{
		"u-1": {{ID: "m-1", UserID: "u-1", TenantID: "t-moto", Role: rbac.RoleAdmin}},
	}}
	tenants := &fakeTenantRepo{
		bySlug: map[string]*entity.Tenant{"motokitchen": moto},
		byID:   map[string]*entity.Tenant{"t-moto": moto},
	}
	uc := auth.New(users, members, tenants, auth.JWTConfig{Secret: testSecret, Issuer: "test"})
	return uc, users, members, tenants
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	uc, _, _, _ := fixture(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@motokitchen.nl", Password: testPassword})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "motokitchen", out.TenantSlug)
	assert.Equal(t, rbac.RoleAdmin, out.Role)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)

	claims, err := pkgjwt.Parse(testSecret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "t-moto", claims.TenantID)
	assert.Equal(t, rbac.RoleAdmin, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, _, _ := fixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@motokitchen.nl", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownUserSameErrorAsWrongPassword(t *testing.T) {
	uc, _, _, _ := fixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "no user enumeration: unknown user and bad password look identical")
}

// Authenticated but zero memberships: refused before any token exists.
func TestLogin_NoMembershipForbidden(t *testing.T) {
	uc, _, members, _ := fixture(t)
	members.byUser["u-1"] = nil

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@motokitchen.nl", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrNoMembership)
	assert.Nil(t, out)
}

func TestLogin_MultipleMembershipsRequireExplicitTenant(t *testing.T) {
	uc, _, members, tenants := fixture(t)
	bistro := &entity.Tenant{ID: "t-bistro", Slug: "bistro", Status: entity.TenantStatusActive}
	tenants.bySlug["bistro"] = bistro
	tenants.byID["t-bistro"] = bistro
	members.byUser["u-1"] = append(members.byUser["u-1"],
		&entity.Membership{ID: "m-2", UserID: "u-1", TenantID: "t-bistro", Role: rbac.RoleOwner})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@motokitchen.nl", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrTenantSelection)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "admin@motokitchen.nl", Password: testPassword, TenantSlug: "bistro",
	})
	require.NoError(t, err)
	assert.Equal(t, "bistro", out.TenantSlug)
	assert.Equal(t, rbac.RoleOwner, out.Role)
}

func TestLogin_SuspendedTenantRefused(t *testing.T) {
	uc, _, _, tenants := fixture(t)
	tenants.byID["t-moto"].Status = entity.TenantStatusSuspended

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@motokitchen.nl", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrNoMembership)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetUser / RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestGetUser_InvalidTokenIsNoUserNotError(t *testing.T) {
	uc, _, _, _ := fixture(t)

	for _, token := range []string{"", "not.a.token", "a.b.c"} {
		user, claims, err := uc.GetUser(context.Background(), token)
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.Nil(t, claims)
	}
}

func TestRequireAdmin_Success(t *testing.T) {
	uc, _, _, _ := fixture(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@motokitchen.nl", Password: testPassword})
	require.NoError(t, err)

	identity, err := uc.RequireAdmin(context.Background(), out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "t-moto", identity.TenantID)
	assert.Equal(t, rbac.RoleAdmin, identity.Role)
}

// A revoked membership locks the user out even while the token is still valid.
func TestRequireAdmin_RevokedMembership(t *testing.T) {
	uc, _, members, _ := fixture(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@motokitchen.nl", Password: testPassword})
	require.NoError(t, err)

	members.byUser["u-1"] = nil
	_, err = uc.RequireAdmin(context.Background(), out.AccessToken)
	assert.ErrorIs(t, err, domain.ErrNoMembership)
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	uc, _, _, _ := fixture(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@motokitchen.nl", Password: testPassword})
	require.NoError(t, err)

	renewed, err := uc.Refresh(context.Background(), out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.Equal(t, "motokitchen", renewed.TenantSlug)
}
