package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "listing:"

// Redis implements Store on a shared redis client, suitable for deployments
// where several instances must observe the same invalidations.
type Redis struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedis connects to the given address and verifies the connection.
func NewRedis(addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: connect to redis: %w", err)
	}

	return &Redis{client: client, keyPrefix: defaultKeyPrefix}, nil
}

// NewRedisWithClient wraps an existing client, sharing it across components.
func NewRedisWithClient(client *redis.Client, keyPrefix string) *Redis {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &Redis{client: client, keyPrefix: keyPrefix}
}

// Invalidate drops the cached listing for the tag. Deleting a missing key is
// not an error.
func (r *Redis) Invalidate(ctx context.Context, tag string) error {
	if err := r.client.Del(ctx, r.keyPrefix+tag).Err(); err != nil {
		return fmt.Errorf("cache: invalidate %s: %w", tag, err)
	}
	return nil
}

// Get returns the cached listing body, or ErrMiss.
func (r *Redis) Get(ctx context.Context, tag string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.keyPrefix+tag).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("cache: get %s: %w", tag, err)
	}
	return value, nil
}

// Set stores the listing body under the tag with a TTL.
func (r *Redis) Set(ctx context.Context, tag string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.keyPrefix+tag, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", tag, err)
	}
	return nil
}
