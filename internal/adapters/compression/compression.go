// Package compression provides the built-in stream compressors: none, gzip,
// zstd, lz4, bzip2 and xz. Every compressor implements ports.Compressor and
// is safe for concurrent use; each NewWriter/NewReader call gets its own
// stream state.
package compression

import (
	"fmt"
	"io"
	"runtime"

	"github.com/iamNilotpal/kit/internal/core/domain"
	"github.com/iamNilotpal/kit/internal/core/ports"
)

// Scheme names returned by Name.
const (
	NameNone  = "none"
	NameGzip  = "gzip"
	NameZstd  = "zstd"
	NameLZ4   = "lz4"
	NameBzip2 = "bzip2"
	NameXz    = "xz"
)

// levelRange is the accepted [min, max] level for a scheme; 0 is always
// accepted and means "default".
var levelRange = map[string][2]int{
	NameGzip:  {-2, 9},
	NameZstd:  {int(ZstdFastestLevel), int(ZstdBestLevel)},
	NameLZ4:   {1, 9},
	NameBzip2: {1, 9},
}

// Returns CompressionOptions initialized with the scheme defaults and one
// encoder/decoder goroutine per CPU.
func DefaultOptions() *domain.CompressionOptions {
	return &domain.CompressionOptions{
		Level:              0,
		EncoderConcurrency: uint8(runtime.NumCPU()),
		DecoderConcurrency: uint8(runtime.NumCPU()),
	}
}

// Checks that the options are valid for the named scheme and returns an error
// if any option is outside acceptable bounds.
func Validate(scheme string, input *domain.CompressionOptions) error {
	if input == nil {
		return nil
	}

	if r, ok := levelRange[scheme]; ok && input.Level != 0 {
		if input.Level < r[0] || input.Level > r[1] {
			return fmt.Errorf("%s compression level must be between %d and %d, got %d", scheme, r[0], r[1], input.Level)
		}
	}

	if input.EncoderConcurrency > uint8(runtime.NumCPU()) {
		return fmt.Errorf(
			"encoder concurrency must be between 0 and %d, got %d", runtime.NumCPU(), input.EncoderConcurrency,
		)
	}

	if input.DecoderConcurrency > uint8(runtime.NumCPU()) {
		return fmt.Errorf(
			"decoder concurrency must be between 0 and %d, got %d", runtime.NumCPU(), input.DecoderConcurrency,
		)
	}

	return nil
}

// New returns the built-in compressor for scheme configured with opts.
func New(scheme string, opts *domain.CompressionOptions) (ports.Compressor, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if err := Validate(scheme, opts); err != nil {
		return nil, err
	}

	var (
		c   ports.Compressor
		err error
	)

	switch scheme {
	case NameNone:
		c = NewNone()
	case NameGzip:
		c, err = NewGzipCompression(opts.Level)
	case NameLZ4:
		c, err = NewLZ4Compression(opts.Level)
	case NameBzip2:
		c, err = NewBzip2Compression(opts.Level)
	case NameXz:
		c = NewXzCompression()
	case NameZstd:
		level := opts.Level
		if level == 0 {
			level = int(ZstdDefaultLevel)
		}
		c, err = NewZstdCompression(Options{
			Level:              uint8(level),
			EncoderConcurrency: opts.EncoderConcurrency,
			DecoderConcurrency: opts.DecoderConcurrency,
		})
	default:
		return nil, fmt.Errorf("unknown compression scheme: %q", scheme)
	}

	if err != nil {
		return nil, err
	}
	return c, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
