package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL bounds how long an entry survives if an eviction is missed.
	ItemCacheTTL = time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the read model stored in Redis as a hash.
type CachedItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// ItemCache reads and writes item entries. Key format: "item:{id}".
type ItemCache struct {
	client *RedisClient
}

func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get returns the cached item, or redis.Nil when the key is absent.
func (c *ItemCache) Get(ctx context.Context, id string) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, ItemKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return decodeItem(vals)
}

// Set writes item with ItemCacheTTL. HSET and EXPIRE run in one transaction
// so an entry never exists without a TTL.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := ItemKey(item.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.HSet(ctx, key, encodeItem(item))
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete evicts an item. Deleting a missing key is not an error.
func (c *ItemCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Client().Del(ctx, ItemKey(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// ItemKey builds the Redis key for an item id.
func ItemKey(id string) string {
	return itemCacheKeyPrefix + ":" + id
}

func encodeItem(item *CachedItem) map[string]any {
	return map[string]any{
		"id":   item.ID,
		"name": item.Name,
		"done": strconv.FormatBool(item.Done),
	}
}

func decodeItem(vals map[string]string) (*CachedItem, error) {
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	done, err := strconv.ParseBool(vals["done"])
	if err != nil {
		return nil, fmt.Errorf("cache parse done: %w", err)
	}
	if vals["id"] == "" {
		return nil, fmt.Errorf("cache entry missing id")
	}
	return &CachedItem{ID: vals["id"], Name: vals["name"], Done: done}, nil
}
