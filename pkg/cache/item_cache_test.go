package cache

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestItemKey(t *testing.T) {
	if got := ItemKey("65f1a2b3c4d5e6f708091a2b"); got != "item:65f1a2b3c4d5e6f708091a2b" {
		t.Fatalf("unexpected key: %q", got)
	}
}

func TestEncodeDecodeItem(t *testing.T) {
	for _, done := range []bool{true, false} {
		in := &CachedItem{ID: "65f1a2b3c4d5e6f708091a2b", Name: "milk", Done: done}

		enc := encodeItem(in)
		vals := make(map[string]string, len(enc))
		for k, v := range enc {
			vals[k] = v.(string)
		}

		out, err := decodeItem(vals)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if *out != *in {
			t.Fatalf("got %+v, want %+v", out, in)
		}
	}
}

func TestDecodeItem_Errors(t *testing.T) {
	if _, err := decodeItem(map[string]string{}); !errors.Is(err, redis.Nil) {
		t.Errorf("empty hash: expected redis.Nil, got %v", err)
	}
	if _, err := decodeItem(map[string]string{"id": "x", "name": "milk", "done": "maybe"}); err == nil {
		t.Error("expected error for unparsable done")
	}
	if _, err := decodeItem(map[string]string{"name": "milk", "done": "true"}); err == nil {
		t.Error("expected error for missing id")
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestItemCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	c := NewItemCache(rc)
	item := &CachedItem{ID: "000000000000000000000abc", Name: "milk", Done: true}

	if err := c.Set(ctx, item); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *got != *item {
		t.Fatalf("got %+v, want %+v", got, item)
	}
	if ttl := rc.Client().TTL(ctx, ItemKey(item.ID)).Val(); ttl <= 0 {
		t.Fatalf("expected positive TTL, got %v", ttl)
	}

	if err := c.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, item.ID); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil after Delete, got %v", err)
	}
}
