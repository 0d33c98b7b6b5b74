package unpack

import (
	"log/slog"
	"time"
)

// Option configures a Cache.
type Option func(*Cache)

// WithRoot sets the cache root directory. All entries, lock files, and
// completion sentinels live directly under it. When unset, the root is
// derived from the system temp directory and the current user id.
func WithRoot(dir string) Option {
	return func(c *Cache) {
		c.root = dir
	}
}

// WithTTL sets how long an unused cache entry is retained. An entry's age
// is measured from the modification time of its .done sentinel, which is
// refreshed on every cache hit.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		c.ttl = d
	}
}

// WithLogger sets the logger used for detection, extraction, and sweep
// events. When unset, logging is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = l
	}
}
