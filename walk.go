package unpack

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// Walk extracts path into its cache entry (a no-op when already cached)
// and invokes onFile once for every regular file under the entry
// directory, in filesystem traversal order. Directories and non-regular
// entries are skipped. onFile must be non-nil; onEntry may be nil.
//
// If extraction fails, the partial cache entry is removed, onFile is never
// invoked, and the extraction error is returned unchanged.
func (c *Cache) Walk(ctx context.Context, path string, onEntry EntryFunc, onFile FileFunc) error {
	entry := c.EntryPath(path)

	if err := c.Extract(ctx, path, onEntry); err != nil {
		if rmErr := os.RemoveAll(entry); rmErr != nil {
			c.log().Warn("unable to remove partial cache entry", "entry", entry, "error", rmErr)
		}
		return err
	}

	return filepath.WalkDir(entry, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return onFile(entry, p, d)
	})
}
