package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals the requested customer does not exist.
var ErrNotFound = errors.New("customer: not found")

// Repository provides read access to customers. The table is owned by
// another system; this side never writes it.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID fetches a customer by its primary key.
func (r *Repository) GetByID(ctx context.Context, id string) (Customer, error) {
	const query = `
		SELECT id, name, email, image_url
		FROM customers
		WHERE id = $1
	`

	var c Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, fmt.Errorf("customer: query by id: %w", err)
	}

	return c, nil
}

// SelectAll fetches every customer ordered by name.
func (r *Repository) SelectAll(ctx context.Context) ([]Customer, error) {
	const query = `
		SELECT id, name, email, image_url
		FROM customers
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("customer: select all: %w", err)
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("customer: scan: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("customer: iterate: %w", err)
	}

	return customers, nil
}
