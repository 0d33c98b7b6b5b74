package codec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
)

// NewAuto returns a Decoder backed by auto-detecting format
// identification: tar, zip, rar, and 7z containers, with or without a
// gzip, bzip2, xz, zstd, lz4, or brotli wrapper, plus bare compressed
// streams of the same codecs.
func NewAuto() Decoder {
	return autoDecoder{}
}

type autoDecoder struct{}

func (autoDecoder) Detect(ctx context.Context, p string) (Info, error) {
	f, err := os.Open(p)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	format, _, err := archives.Identify(ctx, filepath.Base(p), f)
	if errors.Is(err, archives.NoMatch) {
		return Info{Kind: KindNone}, nil
	}
	if err != nil {
		return Info{}, err
	}

	info := Info{Name: formatName(format)}
	switch format.(type) {
	case archives.Extractor:
		info.Kind = KindArchive
	case archives.Compression:
		info.Kind = KindCompressed
	default:
		info.Kind = KindNone
	}
	return info, nil
}

func (autoDecoder) Open(ctx context.Context, p string) (Source, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}

	format, input, err := archives.Identify(ctx, filepath.Base(p), f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	switch t := format.(type) {
	case archives.Extractor:
		return &archiveSource{ctx: ctx, file: f, input: input, ex: t}, nil
	case archives.Compression:
		return &streamSource{file: f, input: input, name: filepath.Base(p), decomp: t}, nil
	default:
		_ = f.Close()
		return nil, fmt.Errorf("unsupported format %s", formatName(format))
	}
}

// archiveSource walks the members of a multi-member container.
type archiveSource struct {
	ctx   context.Context
	file  *os.File
	input io.Reader
	ex    archives.Extractor
}

func (s *archiveSource) Walk(visit func(Member) error) error {
	return s.ex.Extract(s.ctx, s.input, func(_ context.Context, fi archives.FileInfo) error {
		// Only regular files and directories are surfaced; symlinks and
		// special files have no place in a read-only extraction cache.
		if !fi.IsDir() && !fi.Mode().IsRegular() {
			return nil
		}
		return visit(Member{
			Name:    path.Clean(strings.TrimPrefix(fi.NameInArchive, "/")),
			Size:    fi.Size(),
			Dir:     fi.IsDir(),
			ModTime: fi.ModTime(),
			Open: func() (io.ReadCloser, error) {
				body, err := fi.Open()
				if err != nil {
					return nil, err
				}
				return body, nil
			},
		})
	})
}

func (s *archiveSource) Close() error {
	return s.file.Close()
}

// streamSource adapts a single compressed stream into a one-member
// source named after the source file, with unknown size.
type streamSource struct {
	file   *os.File
	input  io.Reader
	name   string
	decomp archives.Compression
}

func (s *streamSource) Walk(visit func(Member) error) error {
	return visit(Member{
		Name: s.name,
		Size: -1,
		Open: func() (io.ReadCloser, error) {
			return s.decomp.OpenReader(s.input)
		},
	})
}

func (s *streamSource) Close() error {
	return s.file.Close()
}

// formatName converts a format's extension to a short name, e.g. "tar.gz".
func formatName(f archives.Format) string {
	return strings.TrimPrefix(f.Extension(), ".")
}
