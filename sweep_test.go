package unpack

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/unpack/internal/testutil"
)

// seedEntry fabricates a complete cache entry whose .done sentinel has the
// given age.
func seedEntry(t *testing.T, c *Cache, name string, age time.Duration) string {
	t.Helper()
	entry := filepath.Join(c.Root(), "arc-"+name)
	require.NoError(t, os.MkdirAll(entry, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(entry, "a.txt"), []byte("x"), 0o400))
	require.NoError(t, os.WriteFile(entry+".lck", nil, 0o600))
	require.NoError(t, os.WriteFile(entry+".done", nil, 0o600))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(entry+".done", mtime, mtime))
	return entry
}

func TestSweepOnceRemovesExpired(t *testing.T) {
	c := newTestCache(t, WithTTL(time.Hour))

	expired := seedEntry(t, c, "deadbeef-old.tar.gz", 2*time.Hour)
	fresh := seedEntry(t, c, "cafef00d-new.tar.gz", time.Minute)

	assert.Equal(t, 1, c.SweepOnce(context.Background()))

	// Expired entry: sentinel, lock file, and tree all gone.
	assert.NoFileExists(t, expired+".done")
	assert.NoFileExists(t, expired+".lck")
	assert.NoDirExists(t, expired)

	// Fresh entry untouched.
	assert.FileExists(t, fresh+".done")
	assert.FileExists(t, fresh+".lck")
	assert.DirExists(t, fresh)
}

func TestSweepOnceIgnoresForeignFiles(t *testing.T) {
	c := newTestCache(t, WithTTL(time.Hour))
	require.NoError(t, os.MkdirAll(c.Root(), 0o700))
	stray := filepath.Join(c.Root(), "not-an-entry.txt")
	require.NoError(t, os.WriteFile(stray, []byte("keep me"), 0o644))

	assert.Zero(t, c.SweepOnce(context.Background()))
	assert.FileExists(t, stray)
}

func TestSweepOnceMissingRoot(t *testing.T) {
	c, err := New(WithRoot(filepath.Join(t.TempDir(), "never-created")), WithTTL(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, c.SweepOnce(context.Background()))
}

func TestSweepAfterExtract(t *testing.T) {
	c := newTestCache(t, WithTTL(time.Hour))
	src := filepath.Join(t.TempDir(), "logs.tar.gz")
	testutil.WriteTarGz(t, src, fixtureFiles)
	require.NoError(t, c.Extract(context.Background(), src, nil))

	entry := c.EntryPath(src)

	// Young entry survives a sweep.
	assert.Zero(t, c.SweepOnce(context.Background()))
	assert.DirExists(t, entry)

	// Backdate past the TTL and it is evicted.
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(entry+".done", old, old))
	assert.Equal(t, 1, c.SweepOnce(context.Background()))
	assert.NoDirExists(t, entry)
	assert.NoFileExists(t, entry+".lck")
}
