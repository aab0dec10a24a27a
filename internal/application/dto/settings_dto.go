package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest partial settings update. Branding fields need admin;
// the owner-only block (contact, payout) is rejected for non-owners.
type UpdateSettingsRequest struct {
	DisplayName     *string          `json:"display_name"`
	LogoURL         *string          `json:"logo_url"`
	PrimaryColor    *string          `json:"primary_color"`
	SecondaryColor  *string          `json:"secondary_color"`
	MinimumOrder    *decimal.Decimal `json:"minimum_order"`
	OrdersPausedMsg *string          `json:"orders_paused_msg"`

	// Owner-only fields.
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	PayoutIBAN   *string `json:"payout_iban"`
}

// HasOwnerOnlyFields reports whether the request touches owner-gated fields.
func (r UpdateSettingsRequest) HasOwnerOnlyFields() bool {
	return r.ContactEmail != nil || r.ContactPhone != nil || r.PayoutIBAN != nil
}

// SettingsResponse public representation of tenant settings.
type SettingsResponse struct {
	DisplayName     string          `json:"display_name"`
	LogoURL         string          `json:"logo_url"`
	PrimaryColor    string          `json:"primary_color"`
	SecondaryColor  string          `json:"secondary_color"`
	MinimumOrder    decimal.Decimal `json:"minimum_order"`
	ContactEmail    string          `json:"contact_email"`
	ContactPhone    string          `json:"contact_phone"`
	PayoutIBAN      string          `json:"payout_iban,omitempty"`
	OrdersPausedMsg string          `json:"orders_paused_msg,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TimeSlotRequest create/update a delivery window.
type TimeSlotRequest struct {
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity"`
	Active    *bool  `json:"active"`
}

// TimeSlotResponse public representation of a delivery window.
type TimeSlotResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity"`
	Active    bool   `json:"active"`
}
