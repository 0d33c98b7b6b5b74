package codec

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/unpack/internal/testutil"
)

var fixtureFiles = []testutil.File{
	{Name: "a.txt", Body: "alpha\n"},
	{Name: "sub/", Body: ""},
	{Name: "sub/b.txt", Body: "bravo\n"},
}

func TestAutoDetect(t *testing.T) {
	tests := []struct {
		name  string
		write func(t *testing.T, path string)
		file  string
		want  Kind
	}{
		{
			name:  "gzipped tar",
			write: func(t *testing.T, p string) { testutil.WriteTarGz(t, p, fixtureFiles) },
			file:  "x.tar.gz",
			want:  KindArchive,
		},
		{
			name:  "zstd tar",
			write: func(t *testing.T, p string) { testutil.WriteTarZst(t, p, fixtureFiles) },
			file:  "x.tar.zst",
			want:  KindArchive,
		},
		{
			name:  "zip",
			write: func(t *testing.T, p string) { testutil.WriteZip(t, p, fixtureFiles) },
			file:  "x.zip",
			want:  KindArchive,
		},
		{
			name:  "bare gzip",
			write: func(t *testing.T, p string) { testutil.WriteGz(t, p, "plain body\n") },
			file:  "x.log.gz",
			want:  KindCompressed,
		},
		{
			name:  "bare zstd",
			write: func(t *testing.T, p string) { testutil.WriteZst(t, p, "plain body\n") },
			file:  "x.log.zst",
			want:  KindCompressed,
		},
		{
			name: "plain file",
			write: func(t *testing.T, p string) {
				require.NoError(t, os.WriteFile(p, []byte("just some log lines\n"), 0o644))
			},
			file: "x.log",
			want: KindNone,
		},
	}

	dec := NewAuto()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			tt.write(t, path)
			info, err := dec.Detect(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Kind)
		})
	}
}

func TestAutoDetectGzipName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.log.gz")
	testutil.WriteGz(t, path, "body\n")

	info, err := NewAuto().Detect(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "gz", info.Name)
}

func TestAutoDetectMissingFile(t *testing.T) {
	_, err := NewAuto().Detect(context.Background(), filepath.Join(t.TempDir(), "nope.tar"))
	assert.Error(t, err)
}

func TestAutoOpenWalksArchiveMembers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.tar.gz")
	testutil.WriteTarGz(t, path, fixtureFiles)

	src, err := NewAuto().Open(context.Background(), path)
	require.NoError(t, err)
	defer src.Close()

	got := map[string]string{}
	err = src.Walk(func(m Member) error {
		if m.Dir {
			got[m.Name] = "<dir>"
			return nil
		}
		rc, err := m.Open()
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		got[m.Name] = string(body)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"a.txt":     "alpha\n",
		"sub":       "<dir>",
		"sub/b.txt": "bravo\n",
	}, got)
}

func TestAutoOpenCompressedStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log.zst")
	testutil.WriteZst(t, path, "2024-01-01 line\n")

	src, err := NewAuto().Open(context.Background(), path)
	require.NoError(t, err)
	defer src.Close()

	var members []Member
	var body string
	err = src.Walk(func(m Member) error {
		members = append(members, m)
		rc, err := m.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		body = string(b)
		return err
	})
	require.NoError(t, err)

	require.Len(t, members, 1)
	assert.Equal(t, "access.log.zst", members[0].Name)
	assert.Equal(t, int64(-1), members[0].Size)
	assert.Equal(t, "2024-01-01 line\n", body)
}

func TestAutoOpenMissingFile(t *testing.T) {
	_, err := NewAuto().Open(context.Background(), filepath.Join(t.TempDir(), "nope.tar.gz"))
	assert.Error(t, err)
}
