package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote statuses.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusDeclined = "declined"
)

// Quote is a catering quote request submitted by a prospective customer
// and worked by the tenant's staff in the back-office.
type Quote struct {
	ID            string
	TenantID      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	EventDate     time.Time
	GuestCount    int
	Message       string
	Amount        decimal.Decimal // quoted amount, zero until priced
	Status        string          // draft | sent | accepted | declined
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidQuoteStatus reports whether s is a known quote status.
func ValidQuoteStatus(s string) bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusDeclined:
		return true
	}
	return false
}
