package http

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "cinefin:report:"

// ReportCache keeps generated statements in Redis for a short TTL. A nil
// cache is a no-op, so the handlers work without Redis.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if client == nil {
		return nil
	}
	return &ReportCache{client: client, ttl: ttl}
}

func (c *ReportCache) Get(ctx context.Context, key string, target any) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, reportKeyPrefix+key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, target) == nil
}

func (c *ReportCache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, reportKeyPrefix+key, data, c.ttl).Err()
}

// Bust drops every cached report. Called after each successful posting so
// statements never serve stale ledger state beyond the posting boundary.
func (c *ReportCache) Bust(ctx context.Context) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, reportKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}
