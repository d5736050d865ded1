package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals an update against an id with no matching row.
var ErrNotFound = errors.New("invoice: not found")

// Repository is the single persistence path for invoices. Every mutation and
// read in the workflow goes through it.
type Repository interface {
	Insert(ctx context.Context, inv Invoice) error
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) (int64, error)
	SelectAll(ctx context.Context) ([]Invoice, error)
}

// Patch carries the mutable invoice columns. Id and date are immutable after
// creation and deliberately absent.
type Patch struct {
	CustomerID  string
	AmountCents int64
	Status      Status
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed invoice repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// NewID produces the server-assigned invoice identifier.
func NewID() string {
	return uuid.NewString()
}

// Insert persists a fully-populated invoice row.
func (r *PGRepository) Insert(ctx context.Context, inv Invoice) error {
	const insertSQL = `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.pool.Exec(ctx, insertSQL, inv.ID, inv.CustomerID, inv.AmountCents, inv.Status, inv.Date); err != nil {
		return fmt.Errorf("invoice: insert: %w", err)
	}

	return nil
}

// Update rewrites the mutable columns of one invoice.
func (r *PGRepository) Update(ctx context.Context, id string, patch Patch) error {
	const updateSQL = `
		UPDATE invoices
		SET customer_id = $2, amount = $3, status = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, updateSQL, id, patch.CustomerID, patch.AmountCents, patch.Status)
	if err != nil {
		return fmt.Errorf("invoice: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes one invoice by id and reports how many rows matched.
// Zero rows is not an error.
func (r *PGRepository) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("invoice: delete: %w", err)
	}

	return tag.RowsAffected(), nil
}

// SelectAll returns the full invoice listing, newest first.
func (r *PGRepository) SelectAll(ctx context.Context) ([]Invoice, error) {
	const selectSQL = `
		SELECT id, customer_id, amount, status, date::text
		FROM invoices
		ORDER BY date DESC, id
	`

	rows, err := r.pool.Query(ctx, selectSQL)
	if err != nil {
		return nil, fmt.Errorf("invoice: select all: %w", err)
	}
	defer rows.Close()

	invoices := []Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("invoice: scan: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("invoice: iterate: %w", err)
	}

	return invoices, nil
}

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	err := row.Scan(
		&inv.ID,
		&inv.CustomerID,
		&inv.AmountCents,
		&inv.Status,
		&inv.Date,
	)
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}
