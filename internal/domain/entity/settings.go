package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds per-tenant business settings edited in the back-office.
// Branding fields require admin; payment and contact fields require owner.
type Settings struct {
	TenantID        string
	DisplayName     string
	LogoURL         string
	PrimaryColor    string // hex, e.g. "#1a7a4c"
	SecondaryColor  string
	MinimumOrder    decimal.Decimal // minimum cart total for checkout
	ContactEmail    string          // owner-only
	ContactPhone    string          // owner-only
	PayoutIBAN      string          // owner-only
	OrdersPausedMsg string          // non-empty pauses ordering with this message
	UpdatedAt       time.Time
}
