package cache

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/coinform/credserve/pkg/logger"
)

// JanitorSchedule is the cron schedule the SQLite cache janitor runs on
// (daily at 3 AM).
const JanitorSchedule = "0 3 * * *"

// Janitor periodically prunes expired entries from a durable cache
// backend. Only SQLiteCache needs one: Redis expires keys on its own, and
// the in-process cache never outlives the process that would need the
// sweep.
type Janitor struct {
	cache *SQLiteCache
	cron  *cron.Cron
}

// NewJanitor builds a Janitor for c. Call Start to begin the schedule.
func NewJanitor(c *SQLiteCache) *Janitor {
	return &Janitor{cache: c, cron: cron.New()}
}

// Start schedules the prune job and runs one pass immediately.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(JanitorSchedule, j.prune); err != nil {
		return err
	}
	j.cron.Start()
	go j.prune()
	return nil
}

// Stop waits for any in-flight prune to finish before returning.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Janitor) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	n, err := j.cache.Prune(ctx)
	if err != nil {
		logger.Error("cache: janitor prune failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("cache: janitor pruned expired entries", zap.Int64("count", n))
	}
}
