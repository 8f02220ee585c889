package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	dom "megawarez/internal/domain"
)

const keyPrefix = "catalog:"

// Kinds of cached catalog reads.
const (
	KindCategory    = "category"
	KindSubcategory = "subcategory"
	KindProduct     = "product"
)

// CatalogCache caches catalog list, ordered list and search results in Redis.
// Any catalog write drops every key.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCatalogCache returns a new CatalogCache.
func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

// ListKey is the key of the insertion-ordered list of kind.
func ListKey(kind string) string {
	return keyPrefix + kind + ":list"
}

// OrderedKey is the key of kind listed by order.
func OrderedKey(kind string, order dom.Order) string {
	dir := "asc"
	if order.Desc {
		dir = "desc"
	}
	return keyPrefix + kind + ":orderby:" + order.Column + ":" + dir
}

// SearchKey is the key of a search over kind. Matching is case-insensitive
// so the term is lowercased.
func SearchKey(kind, term string) string {
	return keyPrefix + kind + ":search:" + strings.ToLower(term)
}

// Get decodes the value at key into dst. It reports false on a miss.
func (c *CatalogCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores v at key for the configured TTL.
func (c *CatalogCache) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// InvalidateAll removes every catalog key.
func (c *CatalogCache) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
