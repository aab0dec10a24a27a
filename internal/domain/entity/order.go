package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusNew       = "new"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Order is a customer catering order, always scoped to a tenant.
// Items is the line-item snapshot at checkout time (name, quantity, unit price).
type Order struct {
	ID            string
	TenantID      string
	Number        string // e.g. CK-20260828-0042, unique per tenant
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	DeliveryDate  time.Time
	TimeSlotID    string
	Items         json.RawMessage
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	Status        string // new | confirmed | completed | cancelled
	PaymentStatus string // pending | paid | failed
	PaymentRef    string // payment-gateway checkout session id
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
