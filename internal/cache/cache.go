// Package cache provides a small TTL cache used to memoize external
// credibility lookups (domain credibility, bot descriptors) that are cheap
// to re-fetch but expensive to call on every request. A stale entry within
// its TTL is acceptable; the cache never needs to be permanently correct,
// only eventually consistent with the upstream source.
package cache

import "context"

// Cache stores byte-string values under string keys with a per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and true if present and not expired.
	Get(ctx context.Context, key string) (string, bool)
	// Set stores value under key, expiring after ttlSeconds (0 means the
	// cache's default TTL).
	Set(ctx context.Context, key, value string, ttlSeconds int) error
	// Close releases any resources held by the cache.
	Close() error
}

// NopCache is a Cache that never stores anything; every Get misses. Used
// when caching is disabled entirely.
type NopCache struct{}

func (NopCache) Get(ctx context.Context, key string) (string, bool) { return "", false }
func (NopCache) Set(ctx context.Context, key, value string, ttlSeconds int) error { return nil }
func (NopCache) Close() error                                                    { return nil }
