package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caterkit/caterkit-api/internal/domain"
	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// Ensure MembershipRepo implements repository.MembershipRepository.
var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo PostgreSQL adapter for tenant memberships.
type MembershipRepo struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository builds the persistence adapter for memberships.
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepo {
	return &MembershipRepo{pool: pool}
}

const membershipColumns = `id, user_id, tenant_id, role, created_at, updated_at`

// Create persists a new membership. One membership per (user, tenant).
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	query := `
		INSERT INTO tenant_memberships (` + membershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, m.ID, m.UserID, m.TenantID, m.Role, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// ListByUser returns every membership the user holds, oldest first.
func (r *MembershipRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM tenant_memberships WHERE user_id = $1 ORDER BY created_at`
	return r.scanMany(ctx, query, userID)
}

// GetByUserAndTenant returns the membership joining user and tenant, (nil, nil) when absent.
func (r *MembershipRepo) GetByUserAndTenant(ctx context.Context, userID, tenantID string) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM tenant_memberships WHERE user_id = $1 AND tenant_id = $2`
	var m entity.Membership
	err := r.pool.QueryRow(ctx, query, userID, tenantID).Scan(
		&m.ID, &m.UserID, &m.TenantID, &m.Role, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// ListByTenant returns the tenant's members, oldest first.
func (r *MembershipRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM tenant_memberships WHERE tenant_id = $1 ORDER BY created_at`
	return r.scanMany(ctx, query, tenantID)
}

// UpdateRole changes a member's role, scoped to the tenant.
func (r *MembershipRepo) UpdateRole(ctx context.Context, tenantID, id, role string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE tenant_memberships SET role = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, role,
	)
	if err != nil {
		return fmt.Errorf("update membership role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete revokes a membership, scoped to the tenant.
func (r *MembershipRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tenant_memberships WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

func (r *MembershipRepo) scanMany(ctx context.Context, query string, arg any) ([]*entity.Membership, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var list []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.TenantID, &m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
