package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	orders "crossborder-cloud/internal/orders/domain"
)

// OrderRepository reads orders via database/sql. The queries are kept
// dialect-neutral so the same repository serves the embedded sqlite
// store and Postgres (RANDOM() exists in both).
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository constructs a repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// SampleIDs returns up to limit order ids sampled at random.
func (r *OrderRepository) SampleIDs(ctx context.Context, limit int) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("order repo: nil db")
	}
	if limit <= 0 {
		return nil, orders.ErrInvalidLimit
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM orders ORDER BY RANDOM() LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// List returns up to limit orders, newest first.
func (r *OrderRepository) List(ctx context.Context, limit int) ([]orders.Order, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("order repo: nil db")
	}
	if limit <= 0 {
		return nil, orders.ErrInvalidLimit
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, order_number, enterprise, category, status, amount, currency, created_at, updated_at
FROM orders
ORDER BY created_at DESC, id DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []orders.Order
	for rows.Next() {
		var item orders.Order
		if err := rows.Scan(
			&item.ID,
			&item.OrderNumber,
			&item.Enterprise,
			&item.Category,
			&item.Status,
			&item.Amount,
			&item.Currency,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
