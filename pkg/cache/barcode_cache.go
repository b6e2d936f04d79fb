package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// BarcodeCacheTTL is the time-to-live for cached barcode lookups.
	BarcodeCacheTTL = 24 * time.Hour

	barcodeCacheKeyPrefix = "barcode"
)

// CachedLookup is the denormalized scan read model stored in Redis: the item
// a barcode resolves to, plus all codes the item owns so a mutation can
// invalidate every entry pointing at it.
type CachedLookup struct {
	ItemID    uuid.UUID
	Name      string
	Location  string
	Codes     []string
	CreatedAt time.Time
}

// BarcodeCache provides structured read/write operations for the scan hot
// path. Key format: "barcode:{code}".
type BarcodeCache struct {
	client *RedisClient
}

// NewBarcodeCache creates a BarcodeCache backed by the given RedisClient.
func NewBarcodeCache(r *RedisClient) *BarcodeCache {
	return &BarcodeCache{client: r}
}

// Get retrieves a cached lookup by code.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *BarcodeCache) Get(ctx context.Context, code string) (*CachedLookup, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	itemID, err := uuid.Parse(vals["item_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse item_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	var codes []string
	if vals["codes"] != "" {
		codes = strings.Split(vals["codes"], ",")
	}

	return &CachedLookup{
		ItemID:    itemID,
		Name:      vals["name"],
		Location:  vals["location"],
		Codes:     codes,
		CreatedAt: createdAt,
	}, nil
}

// Set writes a lookup entry under every code the item owns, each as a Redis
// hash with a 24-hour TTL. Uses a pipeline so fields and TTL land together.
func (c *BarcodeCache) Set(ctx context.Context, lookup *CachedLookup) error {
	pipe := c.client.Client().Pipeline()
	for _, code := range lookup.Codes {
		key := c.key(code)
		pipe.HSet(ctx, key,
			"item_id", lookup.ItemID.String(),
			"name", lookup.Name,
			"location", lookup.Location,
			"codes", strings.Join(lookup.Codes, ","),
			"created_at", lookup.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		pipe.Expire(ctx, key, BarcodeCacheTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes the cache entries for the given codes.
func (c *BarcodeCache) Delete(ctx context.Context, codes ...string) error {
	if len(codes) == 0 {
		return nil
	}
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = c.key(code)
	}
	if err := c.client.Client().Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "barcode:{code}"
func (c *BarcodeCache) key(code string) string {
	return fmt.Sprintf("%s:%s", barcodeCacheKeyPrefix, code)
}
