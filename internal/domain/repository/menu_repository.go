package repository

import (
	"context"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
)

// MenuRepository is the persistence port for MenuItem (DIP).
// Every query filters by tenant id explicitly, on top of database-level RLS.
type MenuRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.MenuItem, error)
	ListByTenant(ctx context.Context, tenantID string, onlyAvailable bool) ([]*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, tenantID, id string) error
}
