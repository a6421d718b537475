package compression

import (
	"errors"
	"io"
)

// ErrClosed is returned by whole-buffer calls on a closed compressor.
var ErrClosed = errors.New("compressor is closed")

// None passes bytes through unchanged. It backs formats such as plain tar
// that carry no compression layer.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (*None) Name() string { return NameNone }

func (*None) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

func (*None) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}
