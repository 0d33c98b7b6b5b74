package unpack

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
)

// fingerprintBytes is how much leading content participates in the
// fingerprint, matching the cache layout used by cooperating tools.
const fingerprintBytes = 1024

// EntryPath returns the cache entry directory for the given source path:
// <root>/arc-<fingerprint>-<basename>. The fingerprint is a digest over
// the basename plus up to the first 1024 bytes of content, read
// best-effort; an unreadable file still resolves using the basename
// alone. The result is deterministic across calls and processes.
//
// Known collision risk: two distinct files that share a basename and
// identical leading bytes map to the same entry. Callers that need
// stronger identity must disambiguate the source paths themselves.
func (c *Cache) EntryPath(path string) string {
	base := filepath.Base(path)

	h := digest.SHA256.Hash()
	_, _ = h.Write([]byte(base))
	if f, err := os.Open(path); err == nil {
		_, _ = io.Copy(h, io.LimitReader(f, fingerprintBytes))
		_ = f.Close()
	}
	d := digest.NewDigest(digest.SHA256, h)

	return filepath.Join(c.root, fmt.Sprintf("arc-%s-%s", d.Encoded(), base))
}
