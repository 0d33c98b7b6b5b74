// Package codec isolates the archive decode engine behind a narrow
// interface so the caching, locking, and sentinel protocol above it can be
// tested against a substitute decoder.
package codec

import (
	"context"
	"io"
	"time"
)

// Kind classifies what the decoder found at a path.
type Kind int

const (
	// KindNone means no recognized container or compression: a plain file.
	KindNone Kind = iota

	// KindArchive means a multi-member container, compressed or not.
	KindArchive

	// KindCompressed means a single stream wrapped only in compression.
	KindCompressed
)

// Info describes the detected format of a file.
type Info struct {
	// Name is the short format name, e.g. "tar.gz", "zip", "xz".
	Name string

	Kind Kind
}

// Member is one entry of an opened archive.
type Member struct {
	// Name is the member's slash-separated path within the archive.
	Name string

	// Size is the declared body size, or -1 when not known up front.
	Size int64

	// Dir reports whether the member is a directory.
	Dir bool

	// ModTime is the member's recorded modification time; zero when the
	// format does not carry one.
	ModTime time.Time

	// Open returns the member's body. It may be called at most once,
	// before the walk advances past this member.
	Open func() (io.ReadCloser, error)
}

// Source is an opened archive. Walk may be consumed only once.
type Source interface {
	// Walk visits every member in archive order. An error returned by
	// visit aborts the walk and is propagated (possibly wrapped, but
	// matchable with errors.Is).
	Walk(visit func(Member) error) error

	Close() error
}

// Decoder identifies and opens archive containers.
type Decoder interface {
	// Detect reads only as much of the file as format identification
	// needs. It returns Kind KindNone, not an error, for files that are
	// simply not archives.
	Detect(ctx context.Context, path string) (Info, error)

	// Open opens path for member-by-member extraction. A single
	// compressed stream opens as a one-member source whose member is
	// named after the source file and has unknown size.
	Open(ctx context.Context, path string) (Source, error)
}
