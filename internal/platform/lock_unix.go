//go:build unix

package platform

import "golang.org/x/sys/unix"

// LockFile blocks until an exclusive advisory lock is held on fd.
// The lock is honored only by cooperating processes using the same
// mechanism and is released automatically if the process dies.
func LockFile(fd uintptr) error {
	return unix.Flock(int(fd), unix.LOCK_EX)
}

// UnlockFile releases an advisory lock held on fd.
func UnlockFile(fd uintptr) error {
	return unix.Flock(int(fd), unix.LOCK_UN)
}
