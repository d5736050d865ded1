package revenue

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SelectAll fetches the full revenue series in month order.
func (r *Repository) SelectAll(ctx context.Context) ([]Entry, error) {
	const query = `
		SELECT month, revenue
		FROM revenue
		ORDER BY month ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("revenue: select all: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Month, &e.Revenue); err != nil {
			return nil, fmt.Errorf("revenue: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("revenue: iterate: %w", err)
	}

	return entries, nil
}
