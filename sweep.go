package unpack

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SweepOnce scans the cache root and removes every entry whose .done
// sentinel is older than the cache TTL, returning the number of entries
// fully removed. Each expired entry's sentinel, lock file, and directory
// tree are deleted independently; a failed deletion is logged and does not
// stop the sweep.
//
// The sweep does not take the per-entry lock before deleting. A TTL that
// is short relative to extraction time can therefore race with an
// in-progress extraction; choosing a sane TTL is the caller's
// responsibility. Periodic invocation is likewise the caller's: this
// package provides no scheduler.
func (c *Cache) SweepOnce(ctx context.Context) int {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		c.log().Debug("cache root not readable", "root", c.root, "error", err)
		return 0
	}
	c.log().Debug("sweeping archive cache", "root", c.root, "ttl", c.ttl)

	now := time.Now()
	var expired []string
	for _, ent := range entries {
		if filepath.Ext(ent.Name()) != ".done" {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			continue
		}
		if now.Before(info.ModTime().Add(c.ttl)) {
			continue
		}
		expired = append(expired, filepath.Join(c.root, ent.Name()))
	}

	removed := 0
	for _, done := range expired {
		if ctx.Err() != nil {
			break
		}
		entry := strings.TrimSuffix(done, ".done")
		c.log().Debug("removing cached archive", "entry", entry)

		ok := true
		if err := os.Remove(done); err != nil {
			c.log().Warn("unable to remove cache sentinel", "path", done, "error", err)
			ok = false
		}
		if err := os.Remove(entry + ".lck"); err != nil && !os.IsNotExist(err) {
			c.log().Warn("unable to remove cache lock file", "path", entry+".lck", "error", err)
			ok = false
		}
		if err := os.RemoveAll(entry); err != nil {
			c.log().Warn("unable to remove cache entry", "entry", entry, "error", err)
			ok = false
		}
		if ok {
			removed++
		}
	}
	return removed
}

// Sweep runs SweepOnce on a detached goroutine. It never blocks extraction
// or read paths.
func (c *Cache) Sweep(ctx context.Context) {
	go c.SweepOnce(ctx)
}
