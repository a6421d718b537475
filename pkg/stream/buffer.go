// Package stream drains readers into segmented in-memory buffers.
//
// A Buffer grows one fixed-size segment at a time, so large inputs never
// need a single contiguous allocation or the copy that comes with growing
// one. Any number of Readers may replay a Buffer once writing has finished.
package stream

import (
	"errors"
	"fmt"
	"io"

	kerrors "github.com/iamNilotpal/kit/pkg/errors"
	"github.com/iamNilotpal/kit/pkg/pool"
)

// DefaultSegmentSize is the segment length used when none is given.
const DefaultSegmentSize = 32 * 1024

// ErrReleased is returned when a Buffer is used after Release.
var ErrReleased = errors.New("stream: buffer released")

// Buffer is a growable sequence of fixed-size segments. A Buffer is not safe
// for concurrent writes; concurrent Readers are fine once writing is done.
type Buffer struct {
	pool     *pool.SegmentPool
	segments [][]byte
	size     int64
	released bool
}

// NewBuffer returns an empty buffer with the given segment size. A size of
// zero or less selects DefaultSegmentSize.
func NewBuffer(segmentSize int) *Buffer {
	if segmentSize <= 0 {
		segmentSize = DefaultSegmentSize
	}
	return &Buffer{pool: pool.ForSize(segmentSize)}
}

// SegmentSize returns the length of each segment.
func (b *Buffer) SegmentSize() int {
	return b.pool.Size()
}

// Segments returns the number of segments currently held.
func (b *Buffer) Segments() int {
	return len(b.segments)
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int64 {
	return b.size
}

// tail returns the writable remainder of the last segment, adding a new
// segment when the last one is full.
func (b *Buffer) tail() []byte {
	segSize := int64(b.pool.Size())
	if int64(len(b.segments))*segSize == b.size {
		b.segments = append(b.segments, b.pool.Get())
	}
	last := b.segments[len(b.segments)-1]
	return last[b.size-int64(len(b.segments)-1)*segSize:]
}

// Write appends p to the buffer. It never returns a short write.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.released {
		return 0, ErrReleased
	}

	written := 0
	for len(p) > 0 {
		n := copy(b.tail(), p)
		p = p[n:]
		written += n
		b.size += int64(n)
	}
	return written, nil
}

// ReadFrom reads r until EOF directly into the segments.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	if b.released {
		return 0, ErrReleased
	}

	var total int64
	for {
		n, err := r.Read(b.tail())
		b.size += int64(n)
		total += int64(n)

		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// WriteTo writes the whole buffer to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	return b.NewReader().WriteTo(w)
}

// Bytes returns a contiguous copy of the buffer contents.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, b.size)
	for i := range b.segments {
		out = append(out, b.segment(i)...)
	}
	return out
}

// segment returns the filled part of segment i.
func (b *Buffer) segment(i int) []byte {
	segSize := int64(b.pool.Size())
	start := int64(i) * segSize
	end := min(start+segSize, b.size)
	if end <= start {
		return nil
	}
	return b.segments[i][:end-start]
}

// NewReader returns a reader over the buffer contents, starting at the
// beginning. Readers share the segments and do not copy them.
func (b *Buffer) NewReader() *Reader {
	return &Reader{buf: b}
}

// Release hands the segments back to the pool. The buffer and every Reader
// over it must not be used afterwards.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	for _, seg := range b.segments {
		b.pool.Put(seg)
	}
	b.segments = nil
	b.size = 0
	b.released = true
}

// Reader replays a Buffer.
type Reader struct {
	buf *Buffer
	off int64
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int64 {
	return r.buf.size - r.off
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.buf.released {
		return 0, ErrReleased
	}
	if r.off >= r.buf.size {
		return 0, io.EOF
	}

	n := 0
	for n < len(p) && r.off < r.buf.size {
		segSize := int64(r.buf.pool.Size())
		idx := int(r.off / segSize)
		chunk := r.buf.segment(idx)[r.off%segSize:]

		c := copy(p[n:], chunk)
		n += c
		r.off += int64(c)
	}
	return n, nil
}

// WriteTo writes the unread bytes to w.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	if r.buf.released {
		return 0, ErrReleased
	}

	var total int64
	for r.off < r.buf.size {
		segSize := int64(r.buf.pool.Size())
		idx := int(r.off / segSize)
		chunk := r.buf.segment(idx)[r.off%segSize:]

		n, err := w.Write(chunk)
		total += int64(n)
		r.off += int64(n)
		if err != nil {
			return total, err
		}
		if n < len(chunk) {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// Seek implements io.Seeker.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = r.off + offset
	case io.SeekEnd:
		abs = r.buf.size + offset
	default:
		return 0, fmt.Errorf("stream: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("stream: negative position %d", abs)
	}
	r.off = abs
	return abs, nil
}

// Transfer reads src to EOF into a new Buffer with the default segment size.
// src is not closed.
func Transfer(src io.Reader) (*Buffer, error) {
	return TransferSize(src, DefaultSegmentSize)
}

// TransferSize is Transfer with an explicit segment size.
func TransferSize(src io.Reader, segmentSize int) (*Buffer, error) {
	if src == nil {
		return nil, kerrors.InvalidArgument("src", nil, "reader is required")
	}

	buf := NewBuffer(segmentSize)
	if _, err := buf.ReadFrom(src); err != nil {
		buf.Release()
		return nil, kerrors.NewOpError(kerrors.ErrorIO, "transfer", err)
	}
	return buf, nil
}

// TransferReader drains src and returns a reader over the buffered bytes.
func TransferReader(src io.Reader) (io.Reader, error) {
	buf, err := Transfer(src)
	if err != nil {
		return nil, err
	}
	return buf.NewReader(), nil
}
