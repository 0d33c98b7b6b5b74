package unpack

import "errors"

// Sentinel errors identifying the failure mode of an extraction. Errors
// returned by Extract and Walk wrap one of these plus the source path and
// the underlying cause; match with errors.Is.
var (
	// ErrOpenArchive is returned when the source file cannot be opened
	// through the archive decoder.
	ErrOpenArchive = errors.New("unable to open archive")

	// ErrReadEntry is returned when an entry header or entry body cannot
	// be read from the source archive.
	ErrReadEntry = errors.New("unable to read archive entry")

	// ErrWriteEntry is returned when an extracted entry cannot be written
	// into the cache directory.
	ErrWriteEntry = errors.New("unable to write archive entry")

	// ErrLowDiskSpace is returned when available space on the cache
	// filesystem falls under MinFreeSpace during extraction.
	ErrLowDiskSpace = errors.New("available disk space too low")
)
