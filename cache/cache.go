// Package cache holds the listing cache that keeps rendered table views
// between reads. Mutation workflows only ever invalidate; the dashboard is
// the sole writer and reader of cached entries.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when no live entry exists for the tag.
// Callers recompute the listing and Set the result.
var ErrMiss = errors.New("cache: miss")

// Invalidator marks a cached listing stale after a committed mutation.
// Implementations must be safe for concurrent use.
type Invalidator interface {
	Invalidate(ctx context.Context, tag string) error
}

// Store is a full listing cache: invalidation plus read/write of the
// rendered listing body.
type Store interface {
	Invalidator
	Get(ctx context.Context, tag string) ([]byte, error)
	Set(ctx context.Context, tag string, value []byte, ttl time.Duration) error
}
