package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"invoiceflow/customer"
	"invoiceflow/invoice"
	"invoiceflow/revenue"
)

type fakeInvoices struct {
	items []invoice.Invoice
	err   error
}

func (f *fakeInvoices) List(context.Context) ([]invoice.Invoice, error) { return f.items, f.err }

type fakeCustomers struct {
	items []customer.Customer
	err   error
}

func (f *fakeCustomers) List(context.Context) ([]customer.Customer, error) { return f.items, f.err }

type fakeRevenue struct {
	items []revenue.Entry
	err   error
}

func (f *fakeRevenue) List(context.Context) ([]revenue.Entry, error) { return f.items, f.err }

func TestLoad_AllSections(t *testing.T) {
	svc := NewService(
		&fakeInvoices{items: []invoice.Invoice{{ID: "i1", CustomerID: "c1", AmountCents: 1250, Status: invoice.StatusPending, Date: "2024-10-31"}}},
		&fakeCustomers{items: []customer.Customer{{ID: "c1", Name: "Acme"}}},
		&fakeRevenue{items: []revenue.Entry{{Month: "Jan", Revenue: 2000}}},
	)

	snap, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Invoices) != 1 || snap.Invoices[0].ID != "i1" {
		t.Fatalf("unexpected invoices %+v", snap.Invoices)
	}
	if len(snap.Customers) != 1 || snap.Customers[0].Name != "Acme" {
		t.Fatalf("unexpected customers %+v", snap.Customers)
	}
	if len(snap.Revenue) != 1 || snap.Revenue[0].Revenue != 2000 {
		t.Fatalf("unexpected revenue %+v", snap.Revenue)
	}
}

func TestLoad_FirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(
		&fakeInvoices{},
		&fakeCustomers{err: boom},
		&fakeRevenue{},
	)

	_, err := svc.Load(context.Background())
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON([]invoice.Invoice{{ID: "i1", Status: invoice.StatusPaid}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "\n  {") {
		t.Fatalf("expected indented output, got %q", out)
	}
	if !strings.Contains(out, `"i1"`) {
		t.Fatalf("expected payload in output, got %q", out)
	}
}
