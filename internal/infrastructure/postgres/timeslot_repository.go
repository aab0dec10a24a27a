package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// Ensure TimeSlotRepo implements repository.TimeSlotRepository.
var _ repository.TimeSlotRepository = (*TimeSlotRepo)(nil)

// TimeSlotRepo PostgreSQL adapter for delivery time slots.
type TimeSlotRepo struct {
	pool *pgxpool.Pool
}

// NewTimeSlotRepository builds the persistence adapter for time slots.
func NewTimeSlotRepository(pool *pgxpool.Pool) *TimeSlotRepo {
	return &TimeSlotRepo{pool: pool}
}

const timeSlotColumns = `id, tenant_id, label, start_time, end_time, capacity, active, created_at, updated_at`

// Create persists a new time slot.
func (r *TimeSlotRepo) Create(ctx context.Context, s *entity.TimeSlot) error {
	query := `
		INSERT INTO time_slots (` + timeSlotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		s.ID, s.TenantID, s.Label, s.StartTime, s.EndTime, s.Capacity, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert time slot: %w", err)
	}
	return nil
}

// GetByID returns one slot scoped to the tenant, (nil, nil) when missing.
func (r *TimeSlotRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.TimeSlot, error) {
	query := `SELECT ` + timeSlotColumns + ` FROM time_slots WHERE tenant_id = $1 AND id = $2`
	s, err := scanTimeSlot(r.pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// ListByTenant returns the tenant's slots ordered by start time.
func (r *TimeSlotRepo) ListByTenant(ctx context.Context, tenantID string, onlyActive bool) ([]*entity.TimeSlot, error) {
	query := `SELECT ` + timeSlotColumns + ` FROM time_slots WHERE tenant_id = $1`
	if onlyActive {
		query += ` AND active = true`
	}
	query += ` ORDER BY start_time, label`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	defer rows.Close()

	var list []*entity.TimeSlot
	for rows.Next() {
		s, err := scanTimeSlot(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update replaces the mutable slot fields, scoped to the tenant.
func (r *TimeSlotRepo) Update(ctx context.Context, s *entity.TimeSlot) error {
	query := `
		UPDATE time_slots
		SET label = $3, start_time = $4, end_time = $5, capacity = $6, active = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.pool.Exec(ctx, query,
		s.TenantID, s.ID, s.Label, s.StartTime, s.EndTime, s.Capacity, s.Active, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update time slot: %w", err)
	}
	return nil
}

// Delete removes a slot, scoped to the tenant.
func (r *TimeSlotRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM time_slots WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete time slot: %w", err)
	}
	return nil
}

func scanTimeSlot(row rowScanner) (*entity.TimeSlot, error) {
	var s entity.TimeSlot
	err := row.Scan(
		&s.ID, &s.TenantID, &s.Label, &s.StartTime, &s.EndTime, &s.Capacity, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
