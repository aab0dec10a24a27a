package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMenuItemRequest data to create a menu item.
type CreateMenuItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Available   *bool           `json:"available"`
	SortOrder   int             `json:"sort_order"`
}

// UpdateMenuItemRequest partial update; nil pointers leave the field unchanged.
type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Available   *bool            `json:"available"`
	SortOrder   *int             `json:"sort_order"`
}

// MenuItemResponse public representation of a menu item.
type MenuItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
	SortOrder   int             `json:"sort_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
