package unpack

import (
	"os"

	"github.com/meigma/unpack/internal/platform"
)

// entryLock is a whole-file advisory lock on a cache entry's .lck file.
// It is the sole mechanism serializing extraction of one entry across
// threads and processes. Acquire with acquireLock and release with a
// deferred release so the lock is dropped on every exit path.
type entryLock struct {
	f *os.File
}

// acquireLock opens <entry>.lck, creating it if absent, and blocks until
// the exclusive lock is held.
func acquireLock(entry string) (*entryLock, error) {
	f, err := os.OpenFile(entry+".lck", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}
	if err := platform.LockFile(f.Fd()); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &entryLock{f: f}, nil
}

// release drops the lock and closes the handle. The .lck file itself is
// left in place; the janitor removes it together with the entry.
func (l *entryLock) release() {
	_ = platform.UnlockFile(l.f.Fd())
	_ = l.f.Close()
}
