package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateQuoteRequest public quote-request form submission.
type CreateQuoteRequest struct {
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	EventDate     time.Time `json:"event_date"`
	GuestCount    int       `json:"guest_count"`
	Message       string    `json:"message"`
}

// UpdateQuoteRequest back-office quote update.
type UpdateQuoteRequest struct {
	Status *string          `json:"status"`
	Amount *decimal.Decimal `json:"amount"`
}

// QuoteResponse public representation of a quote.
type QuoteResponse struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	EventDate     time.Time       `json:"event_date"`
	GuestCount    int             `json:"guest_count"`
	Message       string          `json:"message"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
