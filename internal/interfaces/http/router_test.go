package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caterkit/caterkit-api/internal/application/auth"
	"github.com/caterkit/caterkit-api/internal/application/checkout"
	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/application/tenantctx"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/rbac"
	"github.com/caterkit/caterkit-api/internal/infrastructure/ratelimit"
	httpapi "github.com/caterkit/caterkit-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes for the remaining ports the full router needs
// ──────────────────────────────────────────────────────────────────────────────

type fakeMenuRepo struct{}

func (fakeMenuRepo) Create(context.Context, *entity.MenuItem) error { return nil }
func (fakeMenuRepo) GetByID(context.Context, string, string) (*entity.MenuItem, error) {
	return nil, nil
}
func (fakeMenuRepo) ListByTenant(context.Context, string, bool) ([]*entity.MenuItem, error) {
	return nil, nil
}
func (fakeMenuRepo) Update(context.Context, *entity.MenuItem) error { return nil }
func (fakeMenuRepo) Delete(context.Context, string, string) error   { return nil }

type fakeOrderRepo struct {
	orders []*entity.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	f.orders = append(f.orders, o)
	return nil
}
func (f *fakeOrderRepo) GetByID(context.Context, string, string) (*entity.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) GetByPaymentRef(context.Context, string, string) (*entity.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (f *fakeOrderRepo) Update(context.Context, *entity.Order) error { return nil }
func (f *fakeOrderRepo) Delete(context.Context, string, string) error {
	return nil
}
func (f *fakeOrderRepo) CountForDay(context.Context, string, time.Time) (int, error) {
	return 0, nil
}
func (f *fakeOrderRepo) CountForSlot(context.Context, string, string, time.Time) (int, error) {
	return 0, nil
}

type fakeQuoteRepo struct{}

func (fakeQuoteRepo) Create(context.Context, *entity.Quote) error { return nil }
func (fakeQuoteRepo) GetByID(context.Context, string, string) (*entity.Quote, error) {
	return nil, nil
}
func (fakeQuoteRepo) ListByTenant(context.Context, string, int, int) ([]*entity.Quote, error) {
	return nil, nil
}
func (fakeQuoteRepo) Update(context.Context, *entity.Quote) error { return nil }
func (fakeQuoteRepo) Delete(context.Context, string, string) error {
	return nil
}

type fakeSlotRepo struct{}

func (fakeSlotRepo) Create(context.Context, *entity.TimeSlot) error { return nil }
func (fakeSlotRepo) GetByID(context.Context, string, string) (*entity.TimeSlot, error) {
	return nil, nil
}
func (fakeSlotRepo) ListByTenant(context.Context, string, bool) ([]*entity.TimeSlot, error) {
	return nil, nil
}
func (fakeSlotRepo) Update(context.Context, *entity.TimeSlot) error { return nil }
func (fakeSlotRepo) Delete(context.Context, string, string) error   { return nil }

type fakeSettingsRepo struct{}

func (fakeSettingsRepo) GetByTenant(context.Context, string) (*entity.Settings, error) {
	return nil, nil
}
func (fakeSettingsRepo) Upsert(context.Context, *entity.Settings) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: the production route table with fakes behind it
// ──────────────────────────────────────────────────────────────────────────────

func routerApp(t *testing.T) *fiber.App {
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
	domains := &fakeDomainRepo{byHost: map[string]*entity.TenantDomain{}}
	orders := &fakeOrderRepo{orders: []*entity.Order{
		{ID: "o-1", TenantID: "t-moto", Number: "CK-20260828-0001", Status: entity.OrderStatusNew},
	}}

	resolver := tenantctx.New(tenantctx.Config{
		RootDomain:        "caterkit.nl",
		DefaultTenantSlug: "motokitchen",
		OrderPathPrefix:   "/order",
	}, tenants, domains, testLogger())

	jwtCfg := auth.JWTConfig{Secret: authTestSecret, Issuer: "test"}
	settings := fakeSettingsRepo{}

	app := fiber.New()
	httpapi.Router(app, httpapi.RouterDeps{
		Resolver:     resolver,
		AuthUC:       auth.New(users, members, tenants, jwtCfg),
		MenuUC:       usecase.NewMenuUseCase(fakeMenuRepo{}),
		OrderUC:      usecase.NewOrderUseCase(orders),
		QuoteUC:      usecase.NewQuoteUseCase(fakeQuoteRepo{}, tenants, settings, nil, nil),
		TimeSlotUC:   usecase.NewTimeSlotUseCase(fakeSlotRepo{}),
		SettingsUC:   usecase.NewSettingsUseCase(settings, tenants),
		MemberUC:     usecase.NewMemberUseCase(members, users),
		CheckoutUC:   checkout.New(orders, fakeMenuRepo{}, fakeSlotRepo{}, settings, tenants, domains, nil, nil),
		Sessions:     httpapi.NewSessionStore(testHashKey, nil, false),
		LoginLimiter: ratelimit.NewMemoryStore(100, time.Minute),
		JWTCfg:       jwtCfg,

		OrderPathPrefix: "/order",
		AppName:         "caterkit-test",
		Secure:          false,

		Metrics: testMetrics(),
		Log:     testLogger(),
	})
	return app
}

func legacyLogin(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	resp := postJSON(t, app, "/api/admin/auth/legacy/login", httpapi.LegacyLoginRequest{
		Email: "admin@motokitchen.nl", Password: authTestPassword, TenantSlug: "motokitchen",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ck := respCookie(resp, httpapi.LegacySessionCookie)
	require.NotNil(t, ck)
	return ck
}

// ──────────────────────────────────────────────────────────────────────────────
// Both session modes through the real route table
// ──────────────────────────────────────────────────────────────────────────────

// A valid legacy cookie alone must reach the legacy back-office reads.
func TestRouter_LegacyCookieReachesLegacyReads(t *testing.T) {
	app := routerApp(t)
	ck := legacyLogin(t, app)

	resp := do(t, app, http.MethodGet, "/api/admin/legacy/orders", ck)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []dto.OrderResponse
	decodeBody(t, resp, &out)
	require.Len(t, out, 1)
	assert.Equal(t, "CK-20260828-0001", out[0].Number)
}

// The two session modes do not interoperate: the legacy cookie opens only
// the legacy group, never the JWT-guarded admin API.
func TestRouter_LegacyCookieDoesNotOpenJWTRoutes(t *testing.T) {
	app := routerApp(t)
	ck := legacyLogin(t, app)

	resp := do(t, app, http.MethodGet, "/api/admin/orders", ck)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_AccessCookieReachesProtectedRoutes(t *testing.T) {
	app := routerApp(t)

	resp := postJSON(t, app, "/api/admin/auth/login", dto.LoginRequest{
		Email: "admin@motokitchen.nl", Password: authTestPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	access := respCookie(resp, httpapi.AccessTokenCookie)
	require.NotNil(t, access)

	resp = do(t, app, http.MethodGet, "/api/admin/orders", access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// And the other way round: the JWT cookie is no legacy session.
	resp = do(t, app, http.MethodGet, "/api/admin/legacy/orders", access)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ProtectedRoutesNeedASession(t *testing.T) {
	app := routerApp(t)

	resp := do(t, app, http.MethodGet, "/api/admin/orders")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/admin/legacy/orders")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
