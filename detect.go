package unpack

import (
	"context"

	"github.com/meigma/unpack/internal/codec"
)

// IsArchive reports whether path should be treated as an archive that the
// cache extracts, as opposed to a plain file the host application reads
// directly.
//
// Multi-member containers (tar, zip, and friends, compressed or not) are
// archives. A single stream wrapped only in gzip is not: hosts read gzip
// natively, so it stays a plain file. A single stream wrapped in any other
// compression is an archive, since it must be inflated once to be read.
// Detection failures are not fatal; they are logged and fold to false.
func (c *Cache) IsArchive(ctx context.Context, path string) bool {
	info, err := c.dec.Detect(ctx, path)
	if err != nil {
		c.log().Debug("archive detection failed", "path", path, "error", err)
		return false
	}

	switch info.Kind {
	case codec.KindArchive:
		c.log().Info("detected archive", "path", path, "format", info.Name)
		return true
	case codec.KindCompressed:
		if info.Name == "gz" {
			return false
		}
		c.log().Info("detected compressed file", "path", path, "format", info.Name)
		return true
	default:
		return false
	}
}
