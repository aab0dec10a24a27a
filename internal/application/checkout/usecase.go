// Package checkout implements the customer checkout flow: cart validation
// against the tenant's menu, minimum-order enforcement, order-number
// generation and payment-session handling via a pluggable gateway.
package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/pricing"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// Gateway is the payment-gateway port: create a hosted checkout session and
// verify one after the customer returns. Protocol details stay behind it.
type Gateway interface {
	CreateSession(ctx context.Context, in SessionInput) (*Session, error)
	VerifySession(ctx context.Context, sessionID string) (*SessionStatus, error)
}

// SessionInput data to open a hosted checkout session. ReturnHost is the
// tenant's verified custom domain; empty means the shared ordering subdomain.
type SessionInput struct {
	OrderID       string
	OrderNumber   string
	ReturnHost    string
	Amount        decimal.Decimal
	Currency      string
	CustomerEmail string
}

// Session a created hosted checkout session.
type Session struct {
	ID  string
	URL string
}

// SessionStatus verification result for a session.
type SessionStatus struct {
	Paid bool
}

// Mailer sends the order confirmation once payment is verified.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, to, tenantName string, order *entity.Order) error
}

// UseCase customer checkout.
type UseCase struct {
	orders   repository.OrderRepository
	menu     repository.MenuRepository
	slots    repository.TimeSlotRepository
	settings repository.SettingsRepository
	tenants  repository.TenantRepository
	domains  repository.TenantDomainRepository
	gateway  Gateway
	mailer   Mailer
}

// New builds the checkout use case. mailer may be nil in tests.
func New(orders repository.OrderRepository, menu repository.MenuRepository, slots repository.TimeSlotRepository, settings repository.SettingsRepository, tenants repository.TenantRepository, domains repository.TenantDomainRepository, gateway Gateway, mailer Mailer) *UseCase {
	return &UseCase{orders: orders, menu: menu, slots: slots, settings: settings, tenants: tenants, domains: domains, gateway: gateway, mailer: mailer}
}

// Checkout validates the cart, persists a pending order and opens a payment
// session. Line prices are re-read from the menu: the client's prices are
// never trusted.
func (uc *UseCase) Checkout(ctx context.Context, tenantID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if in.CustomerName == "" || in.CustomerEmail == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	s, err := uc.settings.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if s != nil && s.OrdersPausedMsg != "" {
		return nil, domain.ErrOrderingPaused
	}

	subtotal := decimal.Zero
	lines := make([]dto.OrderLine, 0, len(in.Lines))
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.menu.GetByID(ctx, tenantID, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Available {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, dto.OrderLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price,
		})
		subtotal = subtotal.Add(pricing.LineTotal(item.Price, line.Quantity))
	}

	if s != nil && pricing.Shortfall(subtotal, s.MinimumOrder).IsPositive() {
		return nil, domain.ErrBelowMinimumOrder
	}

	if in.TimeSlotID != "" {
		slot, err := uc.slots.GetByID(ctx, tenantID, in.TimeSlotID)
		if err != nil {
			return nil, err
		}
		if slot == nil || !slot.Active {
			return nil, domain.ErrInvalidInput
		}
		if slot.Capacity > 0 {
			taken, err := uc.orders.CountForSlot(ctx, tenantID, slot.ID, in.DeliveryDate)
			if err != nil {
				return nil, err
			}
			if taken >= slot.Capacity {
				return nil, domain.ErrConflict
			}
		}
	}

	items, err := json.Marshal(lines)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	number, err := usecase.NextOrderNumber(ctx, uc.orders, tenantID, now)
	if err != nil {
		return nil, err
	}

	tenant, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || !tenant.IsActive() {
		return nil, domain.ErrTenantNotFound
	}

	order := &entity.Order{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Number:        number,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		DeliveryDate:  in.DeliveryDate,
		TimeSlotID:    in.TimeSlotID,
		Items:         items,
		Subtotal:      subtotal,
		Total:         subtotal,
		Status:        entity.OrderStatusNew,
		PaymentStatus: entity.PaymentStatusPending,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	returnHost, err := uc.verifiedDomain(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	session, err := uc.gateway.CreateSession(ctx, SessionInput{
		OrderID:       order.ID,
		OrderNumber:   order.Number,
		ReturnHost:    returnHost,
		Amount:        order.Total,
		Currency:      "eur",
		CustomerEmail: order.CustomerEmail,
	})
	if err != nil {
		return nil, err
	}

	order.PaymentRef = session.ID
	order.UpdatedAt = time.Now()
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Total:       order.Total,
		CheckoutURL: session.URL,
	}, nil
}

// verifiedDomain returns the tenant's first verified custom domain, or ""
// when none exists. Only verified hostnames resolve, so only those may be
// handed out as payment return hosts.
func (uc *UseCase) verifiedDomain(ctx context.Context, tenantID string) (string, error) {
	if uc.domains == nil {
		return "", nil
	}
	ds, err := uc.domains.ListByTenant(ctx, tenantID)
	if err != nil {
		return "", err
	}
	for _, d := range ds {
		if d.IsVerified {
			return d.Hostname, nil
		}
	}
	return "", nil
}

// VerifyPayment confirms a checkout session after redirect. On first
// successful verification the order is marked paid/confirmed and the
// confirmation email goes out; later calls are idempotent.
func (uc *UseCase) VerifyPayment(ctx context.Context, tenantID, sessionID string) (*dto.VerifyPaymentResponse, error) {
	order, err := uc.orders.GetByPaymentRef(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.PaymentStatus == entity.PaymentStatusPaid {
		return &dto.VerifyPaymentResponse{Paid: true, OrderNumber: order.Number}, nil
	}

	status, err := uc.gateway.VerifySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !status.Paid {
		return &dto.VerifyPaymentResponse{Paid: false}, nil
	}

	order.PaymentStatus = entity.PaymentStatusPaid
	order.Status = entity.OrderStatusConfirmed
	order.UpdatedAt = time.Now()
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if uc.mailer != nil {
		tenant, err := uc.tenants.GetByID(ctx, tenantID)
		if err == nil && tenant != nil {
			// Confirmation email failures must not fail the verification.
			_ = uc.mailer.SendOrderConfirmation(ctx, order.CustomerEmail, tenant.Name, order)
		}
	}

	return &dto.VerifyPaymentResponse{Paid: true, OrderNumber: order.Number}, nil
}
