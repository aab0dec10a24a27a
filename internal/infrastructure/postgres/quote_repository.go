package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caterkit/caterkit-api/internal/domain/entity"
	"github.com/caterkit/caterkit-api/internal/domain/repository"
)

// Ensure QuoteRepo implements repository.QuoteRepository.
var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo PostgreSQL adapter for quotes.
type QuoteRepo struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository builds the persistence adapter for quotes.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepo {
	return &QuoteRepo{pool: pool}
}

const quoteColumns = `id, tenant_id, customer_name, customer_email, customer_phone,
	event_date, guest_count, message, amount, status, created_at, updated_at`

// Create persists a new quote request.
func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		q.ID, q.TenantID, q.CustomerName, q.CustomerEmail, q.CustomerPhone,
		q.EventDate, q.GuestCount, q.Message, q.Amount, q.Status, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// GetByID returns one quote scoped to the tenant, (nil, nil) when missing.
func (r *QuoteRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE tenant_id = $1 AND id = $2`
	q, err := scanQuote(r.pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return q, nil
}

// ListByTenant returns the tenant's quotes, newest first.
func (r *QuoteRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Update replaces the mutable quote fields, scoped to the tenant.
func (r *QuoteRepo) Update(ctx context.Context, q *entity.Quote) error {
	query := `
		UPDATE quotes
		SET customer_name = $3, customer_email = $4, customer_phone = $5, event_date = $6,
		    guest_count = $7, message = $8, amount = $9, status = $10, updated_at = $11
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.pool.Exec(ctx, query,
		q.TenantID, q.ID, q.CustomerName, q.CustomerEmail, q.CustomerPhone, q.EventDate,
		q.GuestCount, q.Message, q.Amount, q.Status, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}

// Delete removes a quote, scoped to the tenant.
func (r *QuoteRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

func scanQuote(row rowScanner) (*entity.Quote, error) {
	var q entity.Quote
	err := row.Scan(
		&q.ID, &q.TenantID, &q.CustomerName, &q.CustomerEmail, &q.CustomerPhone,
		&q.EventDate, &q.GuestCount, &q.Message, &q.Amount, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
