//go:build unix

package platform

import "golang.org/x/sys/unix"

// AvailableSpace returns the bytes available to unprivileged users on the
// filesystem containing path.
func AvailableSpace(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil //nolint:unconvert // field widths differ across unix variants
}
