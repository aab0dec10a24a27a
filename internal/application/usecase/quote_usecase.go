package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// QuotePDFGenerator renders a quote document for sending to the customer.
type QuotePDFGenerator interface {
	Generate(quote *entity.Quote, tenant *entity.Tenant, settings *entity.Settings) ([]byte, error)
}

// QuoteMailer sends quote emails with an optional PDF attachment.
type QuoteMailer interface {
	SendQuote(ctx context.Context, to, tenantName string, quote *entity.Quote, pdf []byte) error
}

// QuoteUseCase quote-request intake (public) and back-office quote handling.
type QuoteUseCase struct {
	quotes   repository.QuoteRepository
	tenants  repository.TenantRepository
	settings repository.SettingsRepository
	pdf      QuotePDFGenerator
	mailer   QuoteMailer
}

// NewQuoteUseCase builds the use case. pdf and mailer may be nil in tests.
func NewQuoteUseCase(quotes repository.QuoteRepository, tenants repository.TenantRepository, settings repository.SettingsRepository, pdf QuotePDFGenerator, mailer QuoteMailer) *QuoteUseCase {
	return &QuoteUseCase{quotes: quotes, tenants: tenants, settings: settings, pdf: pdf, mailer: mailer}
}

// Create records a public quote request for the tenant. A suspended or
// unknown tenant takes no quote requests.
func (uc *QuoteUseCase) Create(ctx context.Context, tenantID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if in.CustomerName == "" || in.CustomerEmail == "" {
		return nil, domain.ErrInvalidInput
	}
	tenant, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || !tenant.IsActive() {
		return nil, domain.ErrTenantNotFound
	}
	now := time.Now()
	quote := &entity.Quote{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		EventDate:     in.EventDate,
		GuestCount:    in.GuestCount,
		Message:       in.Message,
		Amount:        decimal.Zero,
		Status:        entity.QuoteStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// List returns the tenant's quotes, newest first.
func (uc *QuoteUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.QuoteResponse, error) {
	page.DefaultPage()
	quotes, err := uc.quotes.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toQuoteResponse(q))
	}
	return out, nil
}

// GetByID returns one quote, scoped to the tenant.
func (uc *QuoteUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quotes.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, nil
	}
	return toQuoteResponse(quote), nil
}

// Update prices a quote or moves it through draft -> sent -> accepted/declined.
func (uc *QuoteUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	quote, err := uc.quotes.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, nil
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		quote.Amount = *in.Amount
	}
	if in.Status != nil {
		if !entity.ValidQuoteStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		quote.Status = *in.Status
	}
	quote.UpdatedAt = time.Now()
	if err := uc.quotes.Update(ctx, quote); err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// Send renders the quote PDF and emails it, then marks the quote sent.
func (uc *QuoteUseCase) Send(ctx context.Context, tenantID, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quotes.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, nil
	}
	if quote.Amount.IsZero() {
		return nil, domain.ErrInvalidInput // price before sending
	}
	tenant, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	settings, err := uc.settings.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var pdf []byte
	if uc.pdf != nil {
		if pdf, err = uc.pdf.Generate(quote, tenant, settings); err != nil {
			return nil, err
		}
	}
	if uc.mailer != nil {
		if err := uc.mailer.SendQuote(ctx, quote.CustomerEmail, tenant.Name, quote, pdf); err != nil {
			return nil, err
		}
	}

	quote.Status = entity.QuoteStatusSent
	quote.UpdatedAt = time.Now()
	if err := uc.quotes.Update(ctx, quote); err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// Delete removes a quote.
func (uc *QuoteUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.quotes.Delete(ctx, tenantID, id)
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:            q.ID,
		CustomerName:  q.CustomerName,
		CustomerEmail: q.CustomerEmail,
		CustomerPhone: q.CustomerPhone,
		EventDate:     q.EventDate,
		GuestCount:    q.GuestCount,
		Message:       q.Message,
		Amount:        q.Amount,
		Status:        q.Status,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
