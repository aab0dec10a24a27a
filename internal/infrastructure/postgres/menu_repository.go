package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// Ensure MenuRepo implements repository.MenuRepository.
var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo PostgreSQL adapter for menu items. Every query filters by
// tenant_id explicitly; database RLS is the second enforcement layer.
type MenuRepo struct {
	pool *pgxpool.Pool
}

// NewMenuRepository builds the persistence adapter for menu items.
func NewMenuRepository(pool *pgxpool.Pool) *MenuRepo {
	return &MenuRepo{pool: pool}
}

const menuColumns = `id, tenant_id, name, description, category, price, available, sort_order, created_at, updated_at`

// Create persists a new menu item.
func (r *MenuRepo) Create(ctx context.Context, item *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (` + menuColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		item.ID, item.TenantID, item.Name, item.Description, item.Category,
		item.Price, item.Available, item.SortOrder, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

// GetByID returns one item scoped to the tenant, (nil, nil) when missing.
func (r *MenuRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE tenant_id = $1 AND id = $2`
	var m entity.MenuItem
	err := r.pool.QueryRow(ctx, query, tenantID, id).Scan(
		&m.ID, &m.TenantID, &m.Name, &m.Description, &m.Category,
		&m.Price, &m.Available, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &m, nil
}

// ListByTenant returns the tenant's menu ordered for display.
func (r *MenuRepo) ListByTenant(ctx context.Context, tenantID string, onlyAvailable bool) ([]*entity.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE tenant_id = $1`
	if onlyAvailable {
		query += ` AND available = true`
	}
	query += ` ORDER BY category, sort_order, name`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var list []*entity.MenuItem
	for rows.Next() {
		var m entity.MenuItem
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Name, &m.Description, &m.Category,
			&m.Price, &m.Available, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update replaces a menu item's fields, scoped to the tenant.
func (r *MenuRepo) Update(ctx context.Context, item *entity.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $3, description = $4, category = $5, price = $6, available = $7, sort_order = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.pool.Exec(ctx, query,
		item.TenantID, item.ID, item.Name, item.Description, item.Category,
		item.Price, item.Available, item.SortOrder, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

// Delete removes a menu item, scoped to the tenant.
func (r *MenuRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}
