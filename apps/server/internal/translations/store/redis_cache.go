package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

const redisKeyPrefix = "docstatus:report:"

// Compile-time check: *RedisReportCache implements translations.ReportCache.
var _ translations.ReportCache = (*RedisReportCache)(nil)

// RedisReportCache keeps the last report for one repository as a JSON blob
// that expires after ttl.
type RedisReportCache struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisReportCache creates a cache scoped to owner/repo@ref.
func NewRedisReportCache(rdb *redis.Client, owner, repo, ref string, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{
		rdb: rdb,
		key: fmt.Sprintf("%s%s/%s@%s", redisKeyPrefix, owner, repo, ref),
		ttl: ttl,
	}
}

// Get returns the cached report, or nil when there is none.
func (c *RedisReportCache) Get(ctx context.Context) ([]*translations.Node, error) {
	val, err := c.rdb.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get report %q: %w", c.key, err)
	}
	nodes := []*translations.Node{}
	if err := json.Unmarshal([]byte(val), &nodes); err != nil {
		return nil, fmt.Errorf("unmarshal report %q: %w", c.key, err)
	}
	return nodes, nil
}

// Set stores the report, replacing any previous one.
func (c *RedisReportCache) Set(ctx context.Context, nodes []*translations.Node) error {
	if nodes == nil {
		nodes = []*translations.Node{}
	}
	data, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("save report %q: %w", c.key, err)
	}
	return nil
}
