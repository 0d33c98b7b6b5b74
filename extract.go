package unpack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/meigma/unpack/internal/codec"
)

const (
	// copyBufSize is the chunk size used when streaming member bodies.
	copyBufSize = 32 * 1024

	// spaceCheckInterval is how many bytes may be written to a member
	// between free-space probes. Bounds worst-case overcommit for very
	// large members.
	spaceCheckInterval = 1 << 20

	filePerm = 0o400
	dirPerm  = 0o700
)

// Extract extracts path into its cache entry directory if it has not been
// extracted already.
//
// Concurrent requests for the same entry serialize on the entry's advisory
// file lock; within a single process they additionally collapse onto one
// extraction. When the entry's .done sentinel already exists, Extract only
// refreshes its modification time and returns: the sentinel marks the
// entry complete, and its mtime records the last access for eviction.
//
// onEntry, when non-nil, is invoked once per archive member before it is
// written and returns a sink observing that member's extraction progress.
// Extracted files are owner-read-only and directories owner-only,
// regardless of the permissions recorded in the archive.
//
// On failure the first error is returned wrapping one of ErrOpenArchive,
// ErrReadEntry, ErrWriteEntry, or ErrLowDiskSpace, and the entry directory
// may be left partially populated; Walk removes it, callers using Extract
// directly must do the same.
func (c *Cache) Extract(ctx context.Context, path string, onEntry EntryFunc) error {
	entry := c.EntryPath(path)
	_, err, _ := c.group.Do(entry, func() (any, error) {
		return nil, c.extract(ctx, path, entry, onEntry)
	})
	return err
}

func (c *Cache) extract(ctx context.Context, src, entry string, onEntry EntryFunc) error {
	if err := os.MkdirAll(c.root, dirPerm); err != nil {
		return fmt.Errorf("create cache root: %w", err)
	}

	lock, err := acquireLock(entry)
	if err != nil {
		return fmt.Errorf("lock cache entry %s: %w", entry, err)
	}
	defer lock.release()

	done := entry + ".done"
	if _, err := os.Stat(done); err == nil {
		now := time.Now()
		if err := os.Chtimes(done, now, now); err != nil {
			c.log().Warn("unable to refresh cache sentinel", "path", done, "error", err)
		}
		c.log().Debug("archive already extracted", "path", src, "entry", entry)
		return nil
	}

	arc, err := c.dec.Open(ctx, src)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpenArchive, src, err)
	}
	defer arc.Close()

	c.log().Info("extracting archive", "path", src, "entry", entry)
	if err := arc.Walk(func(m codec.Member) error {
		return c.writeMember(src, entry, m, onEntry)
	}); err != nil {
		// Errors raised while writing members pass through unchanged;
		// anything else came from decoding the source stream.
		if errors.Is(err, ErrWriteEntry) || errors.Is(err, ErrLowDiskSpace) || errors.Is(err, ErrReadEntry) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", ErrReadEntry, src, err)
	}

	f, err := os.OpenFile(done, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteEntry, done, err)
	}
	_ = f.Close()
	c.log().Info("archive extracted", "path", src, "entry", entry)
	return nil
}

// writeMember writes one archive member under the entry directory.
func (c *Cache) writeMember(src, entry string, m codec.Member, onEntry EntryFunc) error {
	rel := filepath.FromSlash(m.Name)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("%w: %s: unsafe entry path %q", ErrWriteEntry, src, m.Name)
	}
	dst := filepath.Join(entry, rel)

	var sink ProgressSink
	if onEntry != nil {
		sink = onEntry(dst, m.Size)
	}

	if m.Dir {
		if err := os.MkdirAll(dst, dirPerm); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteEntry, dst, err)
		}
		restoreTime(dst, m.ModTime)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteEntry, dst, err)
	}
	// A crashed extraction can leave a read-only file behind; remove it so
	// the create below does not fail on permissions.
	_ = os.Remove(dst)
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteEntry, dst, err)
	}

	if m.Size != 0 {
		in, err := m.Open()
		if err != nil {
			_ = out.Close()
			return fmt.Errorf("%w: %s >> %s: %v", ErrReadEntry, src, m.Name, err)
		}
		cpErr := c.copyBody(in, out, dst, sink)
		_ = in.Close()
		if cpErr != nil {
			_ = out.Close()
			return cpErr
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteEntry, dst, err)
	}
	restoreTime(dst, m.ModTime)
	return nil
}

// copyBody streams a member body in chunks, crediting the progress sink
// and probing free space after every cumulative megabyte written.
func (c *Cache) copyBody(in io.Reader, out io.Writer, dst string, sink ProgressSink) error {
	buf := make([]byte, copyBufSize)
	var total, lastCheck int64
	for {
		nr, rerr := in.Read(buf)
		if nr > 0 {
			nw, werr := out.Write(buf[:nr])
			if werr != nil {
				return fmt.Errorf("%w: %s: %v", ErrWriteEntry, dst, werr)
			}
			if nw != nr {
				return fmt.Errorf("%w: %s: %v", ErrWriteEntry, dst, io.ErrShortWrite)
			}
			total += int64(nw)
			if sink != nil {
				sink.Add(int64(nw))
			}
			if total-lastCheck > spaceCheckInterval {
				lastCheck = total
				if free, err := c.avail(filepath.Dir(dst)); err == nil && free < MinFreeSpace {
					return fmt.Errorf("%w: %s: %d bytes available", ErrLowDiskSpace, dst, free)
				}
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return fmt.Errorf("%w: %s: %v", ErrReadEntry, dst, rerr)
		}
	}
}

func restoreTime(path string, mtime time.Time) {
	if mtime.IsZero() {
		return
	}
	_ = os.Chtimes(path, mtime, mtime)
}
