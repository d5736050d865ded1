package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_SetGetInvalidate(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Get(ctx, "/dashboard/invoices"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss on empty store, got %v", err)
	}

	if err := store.Set(ctx, "/dashboard/invoices", []byte(`[{"id":"i1"}]`), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, err := store.Get(ctx, "/dashboard/invoices")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(value) != `[{"id":"i1"}]` {
		t.Fatalf("unexpected cached value %q", value)
	}

	if err := store.Invalidate(ctx, "/dashboard/invoices"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	if _, err := store.Get(ctx, "/dashboard/invoices"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after invalidation, got %v", err)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "tag", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, err := store.Get(ctx, "tag"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after expiry, got %v", err)
	}
}

func TestMemory_InvalidateMissingTag(t *testing.T) {
	store := NewMemory()

	if err := store.Invalidate(context.Background(), "never-set"); err != nil {
		t.Fatalf("expected nil for missing tag, got %v", err)
	}
}
