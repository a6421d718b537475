package compression

import (
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// Bzip2Compression produces bzip2 streams. The standard library only
// decodes bzip2, so both directions go through dsnet/compress.
type Bzip2Compression struct {
	level int
}

// NewBzip2Compression returns a bzip2 compressor. Level 0 selects
// bzip2.DefaultCompression.
func NewBzip2Compression(level int) (*Bzip2Compression, error) {
	if level == 0 {
		level = bzip2.DefaultCompression
	} else if level < bzip2.BestSpeed || level > bzip2.BestCompression {
		return nil, fmt.Errorf("bzip2 compression level must be between %d and %d, got %d",
			bzip2.BestSpeed, bzip2.BestCompression, level)
	}
	return &Bzip2Compression{level: level}, nil
}

func (b *Bzip2Compression) Name() string { return NameBzip2 }

func (b *Bzip2Compression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: b.level})
	if err != nil {
		return nil, fmt.Errorf("bzip2 writer: %w", err)
	}
	return zw, nil
}

func (b *Bzip2Compression) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := bzip2.NewReader(r, nil)
	if err != nil {
		return nil, fmt.Errorf("bzip2 reader: %w", err)
	}
	return zr, nil
}
