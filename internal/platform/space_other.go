//go:build !unix

package platform

import "math"

// AvailableSpace reports unlimited space on platforms without statfs,
// disabling the free-space guard rather than failing extraction.
func AvailableSpace(path string) (uint64, error) {
	return math.MaxUint64, nil
}
