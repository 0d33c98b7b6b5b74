// Package testutil builds small archive fixtures for tests.
package testutil

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// File describes one member of a fixture archive. A name ending in "/"
// denotes a directory.
type File struct {
	Name string
	Body string
}

// WriteTarGz writes a gzip-compressed tar archive containing files.
func WriteTarGz(t testing.TB, path string, files []File) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	writeTar(t, gz, files)
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

// WriteTarZst writes a zstd-compressed tar archive containing files.
func WriteTarZst(t testing.TB, path string, files []File) {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("create zstd writer: %v", err)
	}
	writeTar(t, zw, files)
	if err := zw.Close(); err != nil {
		t.Fatalf("close zstd writer: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

// WriteZip writes a zip archive containing files.
func WriteZip(t testing.TB, path string, files []File) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		if strings.HasSuffix(f.Name, "/") {
			continue // zip directories are implied by member paths
		}
		w, err := zw.Create(f.Name)
		if err != nil {
			t.Fatalf("create zip member %s: %v", f.Name, err)
		}
		if _, err := io.WriteString(w, f.Body); err != nil {
			t.Fatalf("write zip member %s: %v", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

// WriteGz writes a bare gzip stream holding body, with no container.
func WriteGz(t testing.TB, path, body string) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := io.WriteString(gz, body); err != nil {
		t.Fatalf("write gzip body: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

// WriteZst writes a bare zstd stream holding body, with no container.
func WriteZst(t testing.TB, path, body string) {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("create zstd writer: %v", err)
	}
	if _, err := io.WriteString(zw, body); err != nil {
		t.Fatalf("write zstd body: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zstd writer: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

func writeTar(t testing.TB, w io.Writer, files []File) {
	t.Helper()
	tw := tar.NewWriter(w)
	for _, f := range files {
		hdr := &tar.Header{
			Name: f.Name,
			Mode: 0o644,
			Size: int64(len(f.Body)),
		}
		if strings.HasSuffix(f.Name, "/") {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
			hdr.Size = 0
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write tar header %s: %v", f.Name, err)
		}
		if hdr.Typeflag != tar.TypeDir {
			if _, err := io.WriteString(tw, f.Body); err != nil {
				t.Fatalf("write tar member %s: %v", f.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
}

func writeFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}
