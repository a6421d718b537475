package ports

import "io"

// Compressor is a pluggable stream codec for one archive compression scheme.
// A single Compressor may serve several archive formats.
type Compressor interface {
	// Name identifies the compression scheme, e.g. "gzip" or "zstd".
	Name() string

	// NewWriter wraps w so that bytes written are compressed into it.
	// Closing the returned writer flushes the stream but does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)

	// NewReader wraps r so that reads return decompressed bytes.
	// Closing the returned reader releases decoder state but does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// CompressionPort is implemented by compressors that can work on whole
// buffers without setting up a stream.
type CompressionPort interface {
	// Compress reduces data size.
	// Returns compressed data and any error that occurred.
	Compress(data []byte) ([]byte, error)

	// Decompress restores original data.
	// Returns decompressed data and any error that occurred.
	Decompress(data []byte) ([]byte, error)

	// Close cleans up compression resources.
	Close() error

	// Level returns current compression level.
	Level() int
}
