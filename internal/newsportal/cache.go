package newsportal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = time.Minute

// ListingCache keeps rendered public listings in Redis.
// Keys carry a generation number; Invalidate bumps it so every older entry becomes unreachable and expires by TTL.
type ListingCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewListingCache connects to redisURL (redis://host:port/db) and checks the connection.
func NewListingCache(ctx context.Context, redisURL string, ttl time.Duration) (*ListingCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &ListingCache{client: client, prefix: "sentinels:", ttl: ttl}, nil
}

func (c *ListingCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.prefix+"gen").Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return gen, err
}

// Key resolves name against the current generation. Readers resolve it once
// and use the same key for Get and Set, so a snapshot loaded before an
// invalidation is never stored under the newer generation.
func (c *ListingCache) Key(ctx context.Context, name string) (string, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return "", err
	}

	return c.prefix + strconv.FormatInt(gen, 10) + ":" + name, nil
}

// Get decodes the value stored under key into dst. A miss returns false with a nil error.
func (c *ListingCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}

	return true, nil
}

func (c *ListingCache) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.prefix+"gen").Err()
}

func (c *ListingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ListingCache) Close() error {
	return c.client.Close()
}
