package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Magic prefixes of the supported compressed containers.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Open opens a cookie log for reading, transparently decompressing
// gzip and zstd files based on their magic bytes. The decompressed
// content is expected to be the same two-column CSV as a plain log.
// The caller owns the returned closer.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := wrapDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return src, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (rc *readCloser) Close() error { return rc.close() }

func wrapDecoder(f *os.File) (io.ReadCloser, error) {
	br := bufio.NewReader(f)

	// Peek returns what it can on short files; a file smaller than the
	// magic is necessarily plain text.
	magic, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: gz, close: func() error {
			// gz.Close surfaces truncation the reads may not have hit yet.
			cerr := gz.Close()
			if err := f.Close(); err != nil {
				return err
			}
			return cerr
		}}, nil

	case bytes.HasPrefix(magic, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: dec, close: func() error {
			dec.Close()
			return f.Close()
		}}, nil

	default:
		return &readCloser{Reader: br, close: f.Close}, nil
	}
}
