package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// Ensure OrderRepo implements repository.OrderRepository.
var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo PostgreSQL adapter for orders. Every query filters by tenant_id
// explicitly; database RLS is the second enforcement layer.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository builds the persistence adapter for orders.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `id, tenant_id, number, customer_name, customer_email, customer_phone,
	delivery_date, time_slot_id, items, subtotal, total, status, payment_status, payment_ref,
	notes, created_at, updated_at`

// Create persists a new order.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.pool.Exec(ctx, query,
		o.ID, o.TenantID, o.Number, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.DeliveryDate, o.TimeSlotID, o.Items, o.Subtotal, o.Total, o.Status,
		o.PaymentStatus, o.PaymentRef, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID returns one order scoped to the tenant, (nil, nil) when missing.
func (r *OrderRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Order, error) {
	query := `SELECT ` + orderScanColumns + ` FROM orders WHERE tenant_id = $1 AND id = $2`
	return r.scanOne(ctx, query, tenantID, id)
}

// GetByPaymentRef returns the order holding a checkout session id, scoped to the tenant.
func (r *OrderRepo) GetByPaymentRef(ctx context.Context, tenantID, paymentRef string) (*entity.Order, error) {
	query := `SELECT ` + orderScanColumns + ` FROM orders WHERE tenant_id = $1 AND payment_ref = $2`
	return r.scanOne(ctx, query, tenantID, paymentRef)
}

// time_slot_id is nullable; COALESCE keeps the scan on plain strings.
const orderScanColumns = `id, tenant_id, number, customer_name, customer_email, customer_phone,
	delivery_date, COALESCE(time_slot_id, ''), items, subtotal, total, status, payment_status,
	COALESCE(payment_ref, ''), notes, created_at, updated_at`

// ListByTenant returns the tenant's orders, newest first.
func (r *OrderRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderScanColumns + ` FROM orders WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update replaces the mutable order fields, scoped to the tenant.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $3, payment_status = $4, payment_ref = NULLIF($5, ''), notes = $6,
		    delivery_date = $7, time_slot_id = NULLIF($8, ''), updated_at = $9
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.pool.Exec(ctx, query,
		o.TenantID, o.ID, o.Status, o.PaymentStatus, o.PaymentRef, o.Notes,
		o.DeliveryDate, o.TimeSlotID, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// Delete removes an order, scoped to the tenant.
func (r *OrderRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// CountForDay counts the tenant's orders created on day, for order numbering.
func (r *OrderRepo) CountForDay(ctx context.Context, tenantID string, day time.Time) (int, error) {
	query := `
		SELECT count(*) FROM orders
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3`
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	var n int
	if err := r.pool.QueryRow(ctx, query, tenantID, start, start.AddDate(0, 0, 1)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders for day: %w", err)
	}
	return n, nil
}

// CountForSlot counts non-cancelled orders for a slot on a delivery date.
func (r *OrderRepo) CountForSlot(ctx context.Context, tenantID, slotID string, deliveryDate time.Time) (int, error) {
	query := `
		SELECT count(*) FROM orders
		WHERE tenant_id = $1 AND time_slot_id = $2 AND delivery_date::date = $3::date AND status <> 'cancelled'`
	var n int
	if err := r.pool.QueryRow(ctx, query, tenantID, slotID, deliveryDate).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders for slot: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *OrderRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.TenantID, &o.Number, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.DeliveryDate, &o.TimeSlotID, &o.Items, &o.Subtotal, &o.Total, &o.Status,
		&o.PaymentStatus, &o.PaymentRef, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
