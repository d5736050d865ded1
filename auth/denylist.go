package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "session:revoked:"

// Denylist records signed-out tokens until their natural expiry, since a
// JWT cannot be recalled once issued.
type Denylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisDenylist shares revocations across instances via SETNX with a TTL.
type RedisDenylist struct {
	client *redis.Client
}

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

func (d *RedisDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := d.client.SetNX(ctx, denylistKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("auth: denylist revoke: %w", err)
	}
	return nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	count, err := d.client.Exists(ctx, denylistKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("auth: denylist lookup: %w", err)
	}
	return count > 0, nil
}

// MemoryDenylist is the in-process twin used in tests and redis-less
// deployments. Entries expire lazily on lookup.
type MemoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[token] = time.Now().Add(ttl)
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	expiresAt, ok := d.revoked[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		delete(d.revoked, token)
		return false, nil
	}
	return true, nil
}

type noopDenylist struct{}

func (noopDenylist) Revoke(context.Context, string, time.Duration) error { return nil }

func (noopDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
