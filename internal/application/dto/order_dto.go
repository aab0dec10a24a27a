package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine one cart/order line as stored on the order snapshot.
type OrderLine struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest admin-side manual order creation (phone orders).
type CreateOrderRequest struct {
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	DeliveryDate  time.Time   `json:"delivery_date"`
	TimeSlotID    string      `json:"time_slot_id"`
	Lines         []OrderLine `json:"lines"`
	Notes         string      `json:"notes"`
}

// UpdateOrderRequest status/notes update by staff.
type UpdateOrderRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// OrderResponse public representation of an order.
type OrderResponse struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	DeliveryDate  time.Time       `json:"delivery_date"`
	TimeSlotID    string          `json:"time_slot_id,omitempty"`
	Items         json.RawMessage `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
