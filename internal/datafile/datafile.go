// Package datafile opens coordinate sheets from disk, transparently
// decompressing gzip and zstd. The format is sniffed from the leading magic
// bytes, so file extensions are only a hint for humans.
package datafile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/g25mix/coords"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Compression identifies a sniffed container format.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

// String returns the conventional name.
func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Sniff reports the compression of the stream behind br without consuming it.
func Sniff(br *bufio.Reader) Compression {
	head, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	default:
		return None
	}
}

// multiCloser closes the decoder first, then the file.
type multiCloser struct {
	io.Reader
	closers []func() error
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// NewReader wraps r with the decoder matching its magic bytes. Closing the
// result releases the decoder but not r.
func NewReader(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)
	kind := Sniff(br)
	switch kind {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, kind, fmt.Errorf("datafile: gzip: %w", err)
		}

		return &multiCloser{Reader: zr, closers: []func() error{zr.Close}}, kind, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, kind, fmt.Errorf("datafile: zstd: %w", err)
		}

		return &multiCloser{Reader: zr, closers: []func() error{func() error { zr.Close(); return nil }}}, kind, nil
	default:
		return io.NopCloser(br), kind, nil
	}
}

// Open opens path (or stdin for "-") and returns a decompressing reader.
// Closing it closes the file too.
func Open(path string) (io.ReadCloser, error) {
	var f *os.File
	if path == Stdin {
		f = os.Stdin
	} else {
		var err error
		if f, err = os.Open(path); err != nil {
			return nil, fmt.Errorf("datafile: %w", err)
		}
	}

	rc, _, err := NewReader(f)
	if err != nil {
		if f != os.Stdin {
			_ = f.Close()
		}

		return nil, fmt.Errorf("%s: %w", path, err)
	}
	closeFile := func() error {
		if f == os.Stdin {
			return nil
		}

		return f.Close()
	}

	return &multiCloser{Reader: rc, closers: []func() error{rc.Close, closeFile}}, nil
}

// LoadCollection opens path and parses it with coords.Read.
func LoadCollection(path string, opts ...coords.Option) (*coords.Collection, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	coll, err := coords.Read(rc, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return coll, nil
}
