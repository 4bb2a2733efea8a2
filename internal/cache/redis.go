package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coinform/credserve/pkg/errors"
	"github.com/coinform/credserve/pkg/logger"
)

// defaultTTL is used when Set is called with ttlSeconds <= 0.
const defaultTTL = 24 * time.Hour

// RedisCache is a Cache backed by a Redis (or Redis-compatible) server. It
// fails open: a Redis error on Get is logged and treated as a cache miss
// rather than surfaced to the caller, since a credibility lookup is always
// safe to recompute.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache dials addr (host:port) and returns a RedisCache. The
// connection is verified with a PING so configuration mistakes surface at
// startup rather than on the first request.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, "redis ping failed", err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logger.Warn("cache: redis get failed, treating as miss", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttlSeconds int) error {
	ttl := defaultTTL
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCacheUnavailable, "redis set failed", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
