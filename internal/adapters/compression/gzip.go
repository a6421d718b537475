package compression

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipCompression produces RFC 1952 gzip streams.
type GzipCompression struct {
	level int
}

// NewGzipCompression returns a gzip compressor. Level 0 selects
// gzip.DefaultCompression.
func NewGzipCompression(level int) (*GzipCompression, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	} else if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		return nil, fmt.Errorf("gzip compression level must be between %d and %d, got %d",
			gzip.HuffmanOnly, gzip.BestCompression, level)
	}
	return &GzipCompression{level: level}, nil
}

func (g *GzipCompression) Name() string { return NameGzip }

func (g *GzipCompression) Level() int { return g.level }

func (g *GzipCompression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw, err := gzip.NewWriterLevel(w, g.level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}
	return zw, nil
}

func (g *GzipCompression) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	return zr, nil
}

// NewHeaderWriter is NewWriter with the gzip header fields set from hdr.
// Header strings must already be Latin-1; the writer rejects anything else
// on the first Write or Close.
func (g *GzipCompression) NewHeaderWriter(w io.Writer, hdr gzip.Header) (*gzip.Writer, error) {
	zw, err := gzip.NewWriterLevel(w, g.level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}
	zw.Name = hdr.Name
	zw.Comment = hdr.Comment
	zw.ModTime = hdr.ModTime
	zw.Extra = hdr.Extra
	return zw, nil
}
