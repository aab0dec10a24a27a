package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/pkg/logger"
	"github.com/caterkit/caterkit-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes (repository ports; lookups return (nil, nil) on no match)
// ──────────────────────────────────────────────────────────────────────────────

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

type fakeDomainRepo struct {
	byHost map[string]*entity.TenantDomain
}

func (f *fakeDomainRepo) GetVerifiedByHostname(_ context.Context, hostname string) (*entity.TenantDomain, error) {
	return f.byHost[hostname], nil
}
func (f *fakeDomainRepo) ListByTenant(context.Context, string) ([]*entity.TenantDomain, error) {
	return nil, nil
}
func (f *fakeDomainRepo) Create(context.Context, *entity.TenantDomain) error { return nil }
func (f *fakeDomainRepo) Delete(context.Context, string, string) error       { return nil }

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

func (f *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }
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

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// metrics.New uses a private registry, so every test may hold its own.
func testMetrics() *metrics.Metrics { return metrics.New("test") }

func activeTenant(id, slug string) *entity.Tenant {
	return &entity.Tenant{ID: id, Slug: slug, Name: slug, Status: entity.TenantStatusActive}
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func respCookie(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
