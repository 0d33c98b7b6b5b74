//go:build !unix

package platform

// LockFile is a no-op on platforms without flock; mutual exclusion then
// only holds within a single process via the extraction group.
func LockFile(fd uintptr) error { return nil }

// UnlockFile is a no-op on platforms without flock.
func UnlockFile(fd uintptr) error { return nil }
