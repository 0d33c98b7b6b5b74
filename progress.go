package unpack

import (
	"io/fs"
	"sync/atomic"
)

// ProgressSink receives the byte count of an extracting archive member.
// Add is called from the extraction loop after each chunk is written.
type ProgressSink interface {
	Add(n int64)
}

// EntryFunc is invoked once per archive member before it is written,
// with the destination path and the member's declared size (-1 when the
// size is not known up front). The returned sink observes the member's
// extraction progress; a nil return discards progress.
type EntryFunc func(dst string, size int64) ProgressSink

// FileFunc is invoked by Walk once per extracted regular file, with the
// cache entry root and the file's path within it. Returning an error
// stops the walk.
type FileFunc func(root, path string, d fs.DirEntry) error

// Counter is a monotonically increasing byte counter that implements
// ProgressSink. It is written by the extraction loop and may be read
// concurrently by an observer.
type Counter struct {
	n atomic.Int64
}

// Add credits n bytes to the counter.
func (c *Counter) Add(n int64) {
	c.n.Add(n)
}

// Bytes returns the number of bytes counted so far.
func (c *Counter) Bytes() int64 {
	return c.n.Load()
}
