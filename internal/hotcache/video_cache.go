// Package hotcache keeps recently read video rows in redis so repeated
// detail lookups skip the primary store. Entries are JSON per id with a
// TTL; mutations invalidate so local flags never go stale in the hot path.
package hotcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/vidsync/internal/model"
)

type VideoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewVideoCache(rdb *redis.Client, ttl time.Duration) *VideoCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &VideoCache{rdb: rdb, ttl: ttl}
}

func key(id string) string { return fmt.Sprintf("video:%s", id) }

// Get is best-effort: any redis or decode problem reads as a miss.
func (c *VideoCache) Get(ctx context.Context, id string) (*model.Video, bool) {
	data, err := c.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var v model.Video
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set stores v with the cache TTL. Failures are ignored; the primary store
// stays authoritative.
func (c *VideoCache) Set(ctx context.Context, v *model.Video) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key(v.ID), payload, c.ttl).Err()
}

// Invalidate drops the entry after a local mutation so the next detail
// read reloads the updated row.
func (c *VideoCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, key(id)).Err()
}
