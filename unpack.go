package unpack

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/meigma/unpack/internal/codec"
	"github.com/meigma/unpack/internal/platform"
)

// MinFreeSpace is the free-space floor enforced while extracting. When the
// available space on the cache filesystem drops below it, the in-flight
// extraction aborts with ErrLowDiskSpace.
const MinFreeSpace = 32 << 20

// DefaultTTL is the retention period applied when no TTL option is given.
const DefaultTTL = 48 * time.Hour

// Cache extracts archives into a shared on-disk cache and replays the
// extracted trees on subsequent requests.
//
// A Cache is safe for concurrent use. Instances in different processes
// cooperate through advisory file locks on the cache entries, so a single
// cache root can be shared by every process of a user.
type Cache struct {
	root   string
	ttl    time.Duration
	dec    codec.Decoder
	logger *slog.Logger

	group singleflight.Group // dedups in-process extractions per entry

	// avail reports available bytes on the filesystem holding a path.
	// Overridable in tests to exercise the space guard.
	avail func(path string) (uint64, error)
}

// New creates a Cache. With no options the cache root is
// <temp dir>/lnav-<uid>-archives and entries are retained for DefaultTTL
// after their last use.
func New(opts ...Option) (*Cache, error) {
	c := &Cache{
		ttl:   DefaultTTL,
		dec:   codec.NewAuto(),
		avail: platform.AvailableSpace,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.root == "" {
		c.root = defaultRoot()
	}
	if !filepath.IsAbs(c.root) {
		abs, err := filepath.Abs(c.root)
		if err != nil {
			return nil, fmt.Errorf("resolve cache root: %w", err)
		}
		c.root = abs
	}
	if c.ttl <= 0 {
		return nil, fmt.Errorf("cache TTL must be positive, got %v", c.ttl)
	}
	return c, nil
}

// Root returns the cache root directory.
func (c *Cache) Root() string {
	return c.root
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Cache) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// defaultRoot derives the per-user cache root under the system temp
// directory.
func defaultRoot() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("lnav-%d-archives", os.Getuid()))
}
