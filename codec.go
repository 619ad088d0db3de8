package roster

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// codec is the compression applied to a dataset file, chosen by extension.
type codec int

const (
	codecNone codec = iota
	codecGzip
	codecZstd
	codecLZ4
)

func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return codecGzip
	case ".zst", ".zstd":
		return codecZstd
	case ".lz4":
		return codecLZ4
	default:
		return codecNone
	}
}

func (c codec) String() string {
	switch c {
	case codecGzip:
		return "gzip"
	case codecZstd:
		return "zstd"
	case codecLZ4:
		return "lz4"
	default:
		return "none"
	}
}

func (c codec) reader(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case codecGzip:
		return gzip.NewReader(r)
	case codecZstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case codecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

func (c codec) writer(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case codecGzip:
		return gzip.NewWriter(w), nil
	case codecZstd:
		return zstd.NewWriter(w)
	case codecLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
