package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/caterkit/caterkit-api/internal/application/auth"
	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/rbac"
	httpapi "github.com/caterkit/caterkit-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	authTestSecret   = "test-secret-key-for-http-tests"
	authTestPassword = "correct-horse-battery"
)

func hashOf(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

type authFixture struct {
	app     *fiber.App
	users   *fakeUserRepo
	members *fakeMembershipRepo
	tenants *fakeTenantRepo
}

func newAuthApp(t *testing.T) *authFixture {
	t.Helper()
	user := &entity.User{
		ID:           "u-1",
		Email:        "admin@motokitchen.nl",
		PasswordHash: hashOf(t, authTestPassword),
		Name:         "Admin",
		Status:       "active",
		CreatedAt:    time.Now(),
	}
	moto := activeTenant("t-moto", "motokitchen")
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

	jwtCfg := auth.JWTConfig{Secret: authTestSecret, Issuer: "test"}
	uc := auth.New(users, members, tenants, jwtCfg)
	sessions := httpapi.NewSessionStore(testHashKey, nil, false)
	met := testMetrics()
	h := httpapi.NewAuthHandler(uc, sessions, jwtCfg, met, testLogger(), false)

	app := fiber.New()
	g := app.Group("/api/admin/auth")
	g.Post("/login", h.Login)
	g.Delete("/login", httpapi.CSRFMiddleware(met), h.Logout)
	g.Get("/session", h.Session)
	g.Post("/refresh", h.Refresh)
	g.Post("/legacy/login", h.LegacyLogin)
	g.Delete("/legacy/login", h.LegacyLogout)

	return &authFixture{app: app, users: users, members: members, tenants: tenants}
}

func postJSON(t *testing.T, app *fiber.App, target string, payload any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func login(t *testing.T, fx *authFixture) *http.Response {
	t.Helper()
	return postJSON(t, fx.app, "/api/admin/auth/login", dto.LoginRequest{
		Email:    "admin@motokitchen.nl",
		Password: authTestPassword,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginEndpoint_SetsCookiesNotBodyTokens(t *testing.T) {
	fx := newAuthApp(t)

	resp := login(t, fx)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	access := respCookie(resp, httpapi.AccessTokenCookie)
	require.NotNil(t, access)
	assert.NotEmpty(t, access.Value)
	assert.True(t, access.HttpOnly)

	refresh := respCookie(resp, httpapi.RefreshTokenCookie)
	require.NotNil(t, refresh)
	assert.Equal(t, "/api/admin/auth", refresh.Path)

	csrf := respCookie(resp, httpapi.CSRFCookie)
	require.NotNil(t, csrf)
	assert.NotEmpty(t, csrf.Value)

	var out map[string]any
	decodeBody(t, resp, &out)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "motokitchen", out["tenantSlug"])
	assert.Equal(t, rbac.RoleAdmin, out["role"])
	// Tokens travel only in cookies.
	_, leaked := out["accessToken"]
	assert.False(t, leaked)
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	fx := newAuthApp(t)

	resp := postJSON(t, fx.app, "/api/admin/auth/login", dto.LoginRequest{
		Email: "admin@motokitchen.nl", Password: "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "INVALID_CREDENTIALS", out.Code)
}

// A correct password with zero memberships is refused with the fixed body and
// no session cookie survives the response.
func TestLoginEndpoint_NoMembershipRefusedWithFixedBody(t *testing.T) {
	fx := newAuthApp(t)
	fx.members.byUser["u-1"] = nil

	resp := login(t, fx)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, `{"error":"User is not authorized as admin"}`, bodyString(t, resp))

	access := respCookie(resp, httpapi.AccessTokenCookie)
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
}

func TestLoginEndpoint_MultipleMembershipsNeedExplicitTenant(t *testing.T) {
	fx := newAuthApp(t)
	bistro := activeTenant("t-bistro", "bistro")
	fx.tenants.bySlug["bistro"] = bistro
	fx.tenants.byID["t-bistro"] = bistro
	fx.members.byUser["u-1"] = append(fx.members.byUser["u-1"],
		&entity.Membership{ID: "m-2", UserID: "u-1", TenantID: "t-bistro", Role: rbac.RoleOwner})

	resp := login(t, fx)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "TENANT_SELECTION_REQUIRED", out.Code)

	resp = postJSON(t, fx.app, "/api/admin/auth/login", dto.LoginRequest{
		Email: "admin@motokitchen.nl", Password: authTestPassword, TenantSlug: "bistro",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ok map[string]any
	decodeBody(t, resp, &ok)
	assert.Equal(t, "bistro", ok["tenantSlug"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Session / refresh / logout
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionEndpoint_NoCookie(t *testing.T) {
	fx := newAuthApp(t)

	resp, err := fx.app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/auth/session", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out dto.SessionResponse
	decodeBody(t, resp, &out)
	assert.False(t, out.Authenticated)
}

func TestSessionEndpoint_WithAccessCookie(t *testing.T) {
	fx := newAuthApp(t)
	access := respCookie(login(t, fx), httpapi.AccessTokenCookie)
	require.NotNil(t, access)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/auth/session", nil)
	req.AddCookie(access)
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.SessionResponse
	decodeBody(t, resp, &out)
	assert.True(t, out.Authenticated)
	assert.Equal(t, "motokitchen", out.TenantSlug)
	assert.Equal(t, rbac.RoleAdmin, out.Role)
	require.NotNil(t, out.User)
	assert.Equal(t, "admin@motokitchen.nl", out.User.Email)
}

func TestRefreshEndpoint_RotatesPair(t *testing.T) {
	fx := newAuthApp(t)
	refresh := respCookie(login(t, fx), httpapi.RefreshTokenCookie)
	require.NotNil(t, refresh)

	resp := postJSON(t, fx.app, "/api/admin/auth/refresh", fiber.Map{}, refresh)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, respCookie(resp, httpapi.AccessTokenCookie))
	assert.NotNil(t, respCookie(resp, httpapi.RefreshTokenCookie))
}

func TestRefreshEndpoint_MissingTokenClearsCookies(t *testing.T) {
	fx := newAuthApp(t)

	resp := postJSON(t, fx.app, "/api/admin/auth/refresh", fiber.Map{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	access := respCookie(resp, httpapi.AccessTokenCookie)
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
}

func TestLogoutEndpoint_GuardedByCSRF(t *testing.T) {
	fx := newAuthApp(t)
	loginResp := login(t, fx)
	access := respCookie(loginResp, httpapi.AccessTokenCookie)
	csrf := respCookie(loginResp, httpapi.CSRFCookie)
	require.NotNil(t, csrf)

	// Without the echoed token the logout is refused even with a session.
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/auth/login", nil)
	req.AddCookie(access)
	req.AddCookie(csrf)
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/auth/login", nil)
	req.AddCookie(access)
	req.AddCookie(csrf)
	req.Header.Set(httpapi.HeaderCSRF, csrf.Value)
	resp, err = fx.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cleared := respCookie(resp, httpapi.AccessTokenCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

// ──────────────────────────────────────────────────────────────────────────────
// Legacy session mode
// ──────────────────────────────────────────────────────────────────────────────

func TestLegacyLogin_CreatesSignedCookie(t *testing.T) {
	fx := newAuthApp(t)

	resp := postJSON(t, fx.app, "/api/admin/auth/legacy/login", httpapi.LegacyLoginRequest{
		Email: "admin@motokitchen.nl", Password: authTestPassword, TenantSlug: "motokitchen",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	decodeBody(t, resp, &out)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "motokitchen", out["tenantSlug"])

	ck := respCookie(resp, httpapi.LegacySessionCookie)
	require.NotNil(t, ck)
	assert.NotEmpty(t, ck.Value)
	assert.True(t, ck.HttpOnly)
}

// The legacy flow checks the password only; membership is not consulted.
func TestLegacyLogin_NoMembershipStillAllowed(t *testing.T) {
	fx := newAuthApp(t)
	fx.members.byUser["u-1"] = nil

	resp := postJSON(t, fx.app, "/api/admin/auth/legacy/login", httpapi.LegacyLoginRequest{
		Email: "admin@motokitchen.nl", Password: authTestPassword, TenantSlug: "motokitchen",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLegacyLogin_UnknownTenant(t *testing.T) {
	fx := newAuthApp(t)

	resp := postJSON(t, fx.app, "/api/admin/auth/legacy/login", httpapi.LegacyLoginRequest{
		Email: "admin@motokitchen.nl", Password: authTestPassword, TenantSlug: "nope",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "TENANT_NOT_FOUND", out.Code)
}

func TestLegacyLogin_WrongPassword(t *testing.T) {
	fx := newAuthApp(t)

	resp := postJSON(t, fx.app, "/api/admin/auth/legacy/login", httpapi.LegacyLoginRequest{
		Email: "admin@motokitchen.nl", Password: "nope", TenantSlug: "motokitchen",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
