// Package dashboard assembles the read side of the app: full table
// snapshots rendered as formatted text, the way the dashboard pages dump
// them.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"invoiceflow/customer"
	"invoiceflow/invoice"
	"invoiceflow/revenue"
)

// Snapshot is one consistent-enough view of the dashboard tables, fetched
// concurrently. There is no cross-table transaction; each section is
// whatever its table held when its query ran.
type Snapshot struct {
	Invoices  []invoice.Invoice
	Customers []customer.Customer
	Revenue   []revenue.Entry
}

// InvoiceLister is the invoice read surface the dashboard consumes.
type InvoiceLister interface {
	List(ctx context.Context) ([]invoice.Invoice, error)
}

// CustomerLister is the customer read surface the dashboard consumes.
type CustomerLister interface {
	List(ctx context.Context) ([]customer.Customer, error)
}

// RevenueLister is the revenue read surface the dashboard consumes.
type RevenueLister interface {
	List(ctx context.Context) ([]revenue.Entry, error)
}

// Service fans a snapshot request out to the three listing services.
type Service struct {
	invoices  InvoiceLister
	customers CustomerLister
	revenue   RevenueLister
}

func NewService(invoices InvoiceLister, customers CustomerLister, revenue RevenueLister) *Service {
	return &Service{
		invoices:  invoices,
		customers: customers,
		revenue:   revenue,
	}
}

// Load fetches all three tables concurrently. The first failure cancels the
// remaining fetches and is returned as the snapshot error.
func (s *Service) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		invoices, err := s.invoices.List(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: load invoices: %w", err)
		}
		snap.Invoices = invoices
		return nil
	})
	g.Go(func() error {
		customers, err := s.customers.List(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: load customers: %w", err)
		}
		snap.Customers = customers
		return nil
	})
	g.Go(func() error {
		entries, err := s.revenue.List(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: load revenue: %w", err)
		}
		snap.Revenue = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

// RenderJSON pretty-prints a snapshot section as indented JSON text, the
// dashboard's only rendering concern.
func RenderJSON(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("dashboard: render: %w", err)
	}
	return string(out), nil
}
