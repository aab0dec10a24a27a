package repository

import (
	"context"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
)

// TimeSlotRepository is the persistence port for TimeSlot (DIP).
type TimeSlotRepository interface {
	Create(ctx context.Context, slot *entity.TimeSlot) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.TimeSlot, error)
	ListByTenant(ctx context.Context, tenantID string, onlyActive bool) ([]*entity.TimeSlot, error)
	Update(ctx context.Context, slot *entity.TimeSlot) error
	Delete(ctx context.Context, tenantID, id string) error
}
