package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/car-rental/internal/dto"
)

const (
	generationKey  = "cars:search:gen"
	maxCachedQuery = 100
)

// RedisSearchCache stores search responses per lowercased query. Bumping a
// generation counter invalidates every cached query at once.
type RedisSearchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSearchCache(rdb *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{rdb: rdb, ttl: ttl}
}

func (c *RedisSearchCache) key(ctx context.Context, query string) (string, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("cars:search:%d:%s", gen, strings.ToLower(query)), nil
}

func (c *RedisSearchCache) Get(ctx context.Context, query string) ([]dto.CarSearchResult, bool) {
	if len(query) > maxCachedQuery {
		return nil, false
	}
	key, err := c.key(ctx, query)
	if err != nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var results []dto.CarSearchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *RedisSearchCache) Set(ctx context.Context, query string, results []dto.CarSearchResult) {
	if len(query) > maxCachedQuery {
		return
	}
	key, err := c.key(ctx, query)
	if err != nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, c.ttl)
}

func (c *RedisSearchCache) Invalidate(ctx context.Context) {
	c.rdb.Incr(ctx, generationKey)
}

// Noop is used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]dto.CarSearchResult, bool) { return nil, false }
func (Noop) Set(context.Context, string, []dto.CarSearchResult)        {}
func (Noop) Invalidate(context.Context)                                {}
