package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/coinform/credserve/pkg/errors"
	"github.com/coinform/credserve/pkg/logger"
)

// cacheEntry is the GORM model backing SQLiteCache. Expired rows are
// skipped and deleted on read; rows nobody reads are removed by Prune,
// which the Janitor runs on a daily schedule.
type cacheEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	ExpiresAt time.Time `gorm:"index"`
}

func (cacheEntry) TableName() string { return "cache_entries" }

// SQLiteCache is a durable Cache backed by a local SQLite file, used as the
// optional durable fallback when no Redis address is configured but cache
// entries should still survive process restarts.
type SQLiteCache struct {
	db *gorm.DB
}

// NewSQLiteCache opens (creating if necessary) a SQLite-backed cache at
// dbPath and migrates its schema.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to create cache directory", err)
	}

	gormLog := gormlogger.Default.LogMode(gormlogger.Silent)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to open cache database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to access cache database handle", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
		logger.Warn("cache: failed to enable WAL mode", zap.Error(err))
	}

	if err := db.AutoMigrate(&cacheEntry{}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to migrate cache schema", err)
	}

	return &SQLiteCache{db: db}, nil
}

func (c *SQLiteCache) Get(ctx context.Context, key string) (string, bool) {
	var e cacheEntry
	err := c.db.WithContext(ctx).First(&e, "key = ?", key).Error
	if err != nil {
		return "", false
	}
	if time.Now().After(e.ExpiresAt) {
		c.db.WithContext(ctx).Delete(&cacheEntry{}, "key = ?", key)
		return "", false
	}
	return e.Value, true
}

func (c *SQLiteCache) Set(ctx context.Context, key, value string, ttlSeconds int) error {
	ttl := defaultTTL
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	e := cacheEntry{Key: key, Value: value, ExpiresAt: time.Now().Add(ttl)}
	err := c.db.WithContext(ctx).Save(&e).Error
	if err != nil {
		return errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to write cache entry", err)
	}
	return nil
}

// Prune deletes every entry whose TTL has already elapsed and returns how
// many rows were removed. Get already does this lazily per key; Prune
// catches entries nobody has read since they expired.
func (c *SQLiteCache) Prune(ctx context.Context) (int64, error) {
	res := c.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&cacheEntry{})
	if res.Error != nil {
		return 0, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to prune expired cache entries", res.Error)
	}
	return res.RowsAffected, nil
}

func (c *SQLiteCache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
