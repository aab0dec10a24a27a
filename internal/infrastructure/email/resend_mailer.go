package email

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/caterkit/caterkit-api/internal/application/checkout"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
)

// Ensure ResendMailer implements both mail ports.
var (
	_ checkout.Mailer     = (*ResendMailer)(nil)
	_ usecase.QuoteMailer = (*ResendMailer)(nil)
)

// ResendMailer sends transactional mail through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string // e.g. "CaterKit <noreply@caterkit.nl>"
}

// NewResendMailer builds the mailer.
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

// SendOrderConfirmation mails the customer after payment is verified.
func (m *ResendMailer) SendOrderConfirmation(ctx context.Context, to, tenantName string, order *entity.Order) error {
	var lines []struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	// The snapshot is ours, but tolerate malformed rows rather than drop the mail.
	_ = json.Unmarshal(order.Items, &lines)

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Bedankt voor je bestelling bij %s!</h2>", tenantName)
	fmt.Fprintf(&b, "<p>Bestelnummer: <strong>%s</strong></p>", order.Number)
	fmt.Fprintf(&b, "<p>Bezorgdatum: %s</p>", order.DeliveryDate.Format("02-01-2006"))
	if len(lines) > 0 {
		b.WriteString("<ul>")
		for _, l := range lines {
			fmt.Fprintf(&b, "<li>%dx %s</li>", l.Quantity, l.Name)
		}
		b.WriteString("</ul>")
	}
	fmt.Fprintf(&b, "<p>Totaal: € %s</p>", order.Total.StringFixed(2))

	req := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: fmt.Sprintf("Bevestiging bestelling %s", order.Number),
		Html:    b.String(),
	}
	if _, err := m.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}
	return nil
}

// SendQuote mails a quote to the customer, attaching the PDF when present.
func (m *ResendMailer) SendQuote(ctx context.Context, to, tenantName string, quote *entity.Quote, pdf []byte) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Offerte van %s</h2>", tenantName)
	fmt.Fprintf(&b, "<p>Beste %s,</p>", quote.CustomerName)
	fmt.Fprintf(&b, "<p>In de bijlage vind je onze offerte voor je evenement op %s (%d gasten).</p>",
		quote.EventDate.Format("02-01-2006"), quote.GuestCount)
	fmt.Fprintf(&b, "<p>Totaalbedrag: € %s</p>", quote.Amount.StringFixed(2))

	req := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: fmt.Sprintf("Offerte %s", tenantName),
		Html:    b.String(),
	}
	if len(pdf) > 0 {
		req.Attachments = []*resend.Attachment{
			{Filename: "offerte.pdf", Content: pdf},
		}
	}
	if _, err := m.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("send quote: %w", err)
	}
	return nil
}
