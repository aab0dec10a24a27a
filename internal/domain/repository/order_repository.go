package repository

import (
	"context"
	"time"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
)

// OrderRepository is the persistence port for Order (DIP).
// Every query filters by tenant id explicitly, on top of database-level RLS.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Order, error)
	GetByPaymentRef(ctx context.Context, tenantID, paymentRef string) (*entity.Order, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, tenantID, id string) error
	// CountForDay counts orders created on day for order-number generation.
	CountForDay(ctx context.Context, tenantID string, day time.Time) (int, error)
	// CountForSlot counts non-cancelled orders on a delivery date and slot,
	// for capacity checks.
	CountForSlot(ctx context.Context, tenantID, slotID string, deliveryDate time.Time) (int, error)
}
