package cache

import (
	"context"

	"go.uber.org/zap"

	"github.com/coinform/credserve/pkg/logger"
)

// Options selects which Cache backend New constructs.
type Options struct {
	// RedisAddr, if set, selects RedisCache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// SQLitePath, if set and RedisAddr is empty, selects SQLiteCache.
	SQLitePath string
}

// New builds the configured Cache backend: Redis if an address is given,
// else a durable SQLite-backed cache if a path is given, else an
// in-process map that does not survive restarts.
func New(ctx context.Context, opts Options) (Cache, error) {
	if opts.RedisAddr != "" {
		c, err := NewRedisCache(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		if err != nil {
			logger.Warn("cache: redis unavailable, falling back to in-process cache", zap.Error(err))
			return NewMemoryCache(), nil
		}
		return c, nil
	}
	if opts.SQLitePath != "" {
		c, err := NewSQLiteCache(opts.SQLitePath)
		if err != nil {
			logger.Warn("cache: sqlite cache unavailable, falling back to in-process cache", zap.Error(err))
			return NewMemoryCache(), nil
		}
		return c, nil
	}
	return NewMemoryCache(), nil
}
