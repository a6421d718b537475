package compression

import (
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// XzCompression produces xz (LZMA2) streams with the library defaults.
type XzCompression struct{}

func NewXzCompression() *XzCompression {
	return &XzCompression{}
}

func (x *XzCompression) Name() string { return NameXz }

func (x *XzCompression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw, err := xz.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("xz writer: %w", err)
	}
	return zw, nil
}

func (x *XzCompression) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}
	return io.NopCloser(zr), nil
}
