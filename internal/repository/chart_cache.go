package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ChartCacheRepository stores encoded chart specs.
type ChartCacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type RedisChartCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisChartCache(rdb *redis.Client, prefix string) *RedisChartCache {
	return &RedisChartCache{rdb: rdb, prefix: prefix}
}

// Get returns ok=false on a miss.
func (c *RedisChartCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisChartCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.prefix+key, val, ttl).Err()
}
