package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest customer checkout submission from the ordering site.
type CheckoutRequest struct {
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	DeliveryDate  time.Time   `json:"delivery_date"`
	TimeSlotID    string      `json:"time_slot_id"`
	Lines         []OrderLine `json:"lines"`
	Notes         string      `json:"notes"`
}

// CheckoutResponse created order plus the payment redirect.
type CheckoutResponse struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	CheckoutURL string          `json:"checkout_url"`
}

// VerifyPaymentResponse result of verifying a checkout session after redirect.
type VerifyPaymentResponse struct {
	Paid        bool   `json:"paid"`
	OrderNumber string `json:"order_number,omitempty"`
}
