package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is one orderable item on a tenant's catering menu.
type MenuItem struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	Category    string // e.g. "starters", "mains", "desserts", "drinks"
	Price       decimal.Decimal
	Available   bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
