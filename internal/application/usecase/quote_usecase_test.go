package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeQuoteRepo struct {
	quotes map[string]*entity.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: map[string]*entity.Quote{}}
}

func (f *fakeQuoteRepo) Create(_ context.Context, q *entity.Quote) error {
	f.quotes[q.ID] = q
	return nil
}
func (f *fakeQuoteRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Quote, error) {
	q := f.quotes[id]
	if q == nil || q.TenantID != tenantID {
		return nil, nil
	}
	return q, nil
}
func (f *fakeQuoteRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range f.quotes {
		if q.TenantID == tenantID {
			out = append(out, q)
		}
	}
	return out, nil
}
func (f *fakeQuoteRepo) Update(_ context.Context, q *entity.Quote) error {
	f.quotes[q.ID] = q
	return nil
}
func (f *fakeQuoteRepo) Delete(_ context.Context, _, id string) error {
	delete(f.quotes, id)
	return nil
}

type fakeTenantRepo struct {
	t *entity.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	if f.t != nil && f.t.ID == id {
		return f.t, nil
	}
	return nil, nil
}
func (f *fakeTenantRepo) GetBySlug(_ context.Context, slug string) (*entity.Tenant, error) {
	if f.t != nil && f.t.Slug == slug {
		return f.t, nil
	}
	return nil, nil
}
func (f *fakeTenantRepo) Update(context.Context, *entity.Tenant) error       { return nil }
func (f *fakeTenantRepo) UpdateStatus(context.Context, string, string) error { return nil }
func (f *fakeTenantRepo) List(context.Context, int, int) ([]*entity.Tenant, error) {
	return nil, nil
}

type fakeSettingsRepo struct {
	s *entity.Settings
}

func (f *fakeSettingsRepo) GetByTenant(context.Context, string) (*entity.Settings, error) {
	return f.s, nil
}
func (f *fakeSettingsRepo) Upsert(_ context.Context, s *entity.Settings) error {
	f.s = s
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const quoteTenantID = "t-moto"

func quoteFixture() (*usecase.QuoteUseCase, *fakeQuoteRepo, *fakeTenantRepo) {
	quotes := newFakeQuoteRepo()
	tenants := &fakeTenantRepo{t: &entity.Tenant{
		ID: quoteTenantID, Slug: "motokitchen", Name: "Moto Kitchen", Status: entity.TenantStatusActive,
	}}
	settings := &fakeSettingsRepo{}
	uc := usecase.NewQuoteUseCase(quotes, tenants, settings, nil, nil)
	return uc, quotes, tenants
}

func quoteRequest() dto.CreateQuoteRequest {
	return dto.CreateQuoteRequest{
		CustomerName:  "Jan",
		CustomerEmail: "jan@example.com",
		EventDate:     time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		GuestCount:    40,
		Message:       "Bedrijfsborrel",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteCreate_Success(t *testing.T) {
	uc, quotes, _ := quoteFixture()

	out, err := uc.Create(context.Background(), quoteTenantID, quoteRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusDraft, out.Status)
	assert.True(t, out.Amount.IsZero())
	require.NotNil(t, quotes.quotes[out.ID])
}

// Intake is public; it still stops at the tenant gate.
func TestQuoteCreate_SuspendedTenantRefused(t *testing.T) {
	uc, quotes, tenants := quoteFixture()
	tenants.t.Status = entity.TenantStatusSuspended

	_, err := uc.Create(context.Background(), quoteTenantID, quoteRequest())
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
	assert.Empty(t, quotes.quotes)
}

func TestQuoteCreate_UnknownTenantRefused(t *testing.T) {
	uc, _, _ := quoteFixture()

	_, err := uc.Create(context.Background(), "t-ghost", quoteRequest())
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestQuoteCreate_MissingContactRejected(t *testing.T) {
	uc, _, _ := quoteFixture()

	in := quoteRequest()
	in.CustomerEmail = ""
	_, err := uc.Create(context.Background(), quoteTenantID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteUpdate_PriceAndStatus(t *testing.T) {
	uc, _, _ := quoteFixture()

	created, err := uc.Create(context.Background(), quoteTenantID, quoteRequest())
	require.NoError(t, err)

	amount := decimal.NewFromInt(450)
	status := entity.QuoteStatusSent
	out, err := uc.Update(context.Background(), quoteTenantID, created.ID, dto.UpdateQuoteRequest{
		Amount: &amount, Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, amount.String(), out.Amount.String())
	assert.Equal(t, entity.QuoteStatusSent, out.Status)
}

func TestQuoteUpdate_NegativeAmountRejected(t *testing.T) {
	uc, _, _ := quoteFixture()

	created, err := uc.Create(context.Background(), quoteTenantID, quoteRequest())
	require.NoError(t, err)

	amount := decimal.NewFromInt(-1)
	_, err = uc.Update(context.Background(), quoteTenantID, created.ID, dto.UpdateQuoteRequest{Amount: &amount})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
