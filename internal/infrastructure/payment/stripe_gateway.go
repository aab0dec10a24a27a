package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/caterkit/caterkit-api/internal/application/checkout"
)

// Ensure StripeGateway implements checkout.Gateway.
var _ checkout.Gateway = (*StripeGateway)(nil)

// Options configures the gateway. SuccessURL and CancelURL override the
// URLs derived from the tenant's ordering site when set.
type Options struct {
	APIKey     string
	RootDomain string
	SuccessURL string
	CancelURL  string
}

// StripeGateway opens and verifies Stripe hosted checkout sessions.
// Success and cancel URLs land back on the tenant's verified custom domain
// when one exists, on the shared ordering subdomain otherwise; both are
// hostnames the resolver actually serves.
type StripeGateway struct {
	api  *client.API
	opts Options
}

// NewStripeGateway builds the gateway with its own client, no global key.
func NewStripeGateway(opts Options) *StripeGateway {
	api := &client.API{}
	api.Init(opts.APIKey, nil)
	return &StripeGateway{api: api, opts: opts}
}

// CreateSession opens a hosted checkout session for one order.
func (g *StripeGateway) CreateSession(ctx context.Context, in checkout.SessionInput) (*checkout.Session, error) {
	// Stripe wants the amount in minor units (cents).
	cents := in.Amount.Shift(2).IntPart()
	base := returnBase(in.ReturnHost, g.opts.RootDomain)

	successURL := g.opts.SuccessURL
	if successURL == "" {
		successURL = base + "/order/order-success?session_id={CHECKOUT_SESSION_ID}"
	}
	cancelURL := g.opts.CancelURL
	if cancelURL == "" {
		cancelURL = base + "/order/checkout"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(in.OrderID),
		CustomerEmail:     stripe.String(in.CustomerEmail),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(in.Currency),
					UnitAmount: stripe.Int64(cents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Order " + in.OrderNumber),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &checkout.Session{ID: s.ID, URL: s.URL}, nil
}

// returnBase is the absolute URL the customer comes back to after payment:
// the verified custom domain when set, the ordering subdomain of the root
// domain otherwise.
func returnBase(returnHost, rootDomain string) string {
	if returnHost != "" {
		return "https://" + returnHost
	}
	return "https://order." + rootDomain
}

// VerifySession re-reads the session from Stripe; payment state is never
// trusted from the redirect alone.
func (g *StripeGateway) VerifySession(ctx context.Context, sessionID string) (*checkout.SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	return &checkout.SessionStatus{Paid: s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid}, nil
}
