package repository

import (
	"context"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
)

// QuoteRepository is the persistence port for Quote (DIP).
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Quote, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	Delete(ctx context.Context, tenantID, id string) error
}
