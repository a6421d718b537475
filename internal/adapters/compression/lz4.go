package compression

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

// LZ4Compression produces LZ4 frame streams.
type LZ4Compression struct {
	level int
}

// NewLZ4Compression returns an lz4 frame compressor. Level 0 selects lz4.Fast.
func NewLZ4Compression(level int) (*LZ4Compression, error) {
	if level < 0 || level >= len(lz4Levels) {
		return nil, fmt.Errorf("lz4 compression level must be between 0 and %d, got %d", len(lz4Levels)-1, level)
	}
	return &LZ4Compression{level: level}, nil
}

func (l *LZ4Compression) Name() string { return NameLZ4 }

func (l *LZ4Compression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[l.level])); err != nil {
		return nil, fmt.Errorf("lz4 writer: %w", err)
	}
	return zw, nil
}

func (l *LZ4Compression) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
