package compression

import (
	"fmt"
	"io"
	"sync"

	"github.com/iamNilotpal/kit/internal/core/domain"
	"github.com/klauspost/compress/zstd"
)

type Options struct {
	Level              uint8
	EncoderConcurrency uint8
	DecoderConcurrency uint8
}

// ZstdCompression implements ports.Compressor and ports.CompressionPort using
// the zstd algorithm. Whole-buffer calls share one encoder and one decoder;
// stream calls get their own.
type ZstdCompression struct {
	level   uint8         // Current compression level (1-4)
	conc    Options       // Concurrency used for per-stream encoders/decoders
	mu      sync.RWMutex  // Protects concurrent access to compression state
	decoder *zstd.Decoder // Shared decoder for DecodeAll
	encoder *zstd.Encoder // Shared encoder for EncodeAll
}

// Compression level constants define the trade-off between compression ratio and speed.
// Higher levels provide better compression at the cost of increased CPU usage and time.
const (
	ZstdFastestLevel uint8 = 1 // zstd.SpeedFastest
	ZstdDefaultLevel uint8 = 2 // zstd.SpeedDefault, roughly zstd level 3
	ZstdBestLevel    uint8 = 4 // zstd.SpeedBestCompression
)

// smallPayload is the minimum destination capacity Compress allocates.
const smallPayload = 64

// NewZstdCompression creates a new zstd compression instance with the specified level.
// The compression level must be between ZstdFastestLevel and ZstdBestLevel.
//
// Returns an error if:
// - The compression level is invalid
// - The encoder or decoder initialization fails
func NewZstdCompression(opts Options) (*ZstdCompression, error) {
	if err := Validate(NameZstd,
		&domain.CompressionOptions{
			Level:              int(opts.Level),
			EncoderConcurrency: opts.EncoderConcurrency,
			DecoderConcurrency: opts.DecoderConcurrency,
		},
	); err != nil {
		return nil, err
	}
	if opts.Level == 0 {
		opts.Level = ZstdDefaultLevel
	}

	encoder, err := zstd.NewWriter(nil, encoderOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(int(opts.DecoderConcurrency)))
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	return &ZstdCompression{encoder: encoder, decoder: decoder, level: opts.Level, conc: opts}, nil
}

// encoderOptions maps opts to encoder options. Zero concurrency keeps the
// library default of GOMAXPROCS.
func encoderOptions(opts Options) []zstd.EOption {
	eopts := []zstd.EOption{zstd.WithEncoderLevel(zstd.EncoderLevel(opts.Level))}
	if opts.EncoderConcurrency > 0 {
		eopts = append(eopts, zstd.WithEncoderConcurrency(int(opts.EncoderConcurrency)))
	}
	return eopts
}

func (z *ZstdCompression) Name() string { return NameZstd }

// NewWriter returns a streaming zstd encoder writing into w.
func (z *ZstdCompression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(w, encoderOptions(z.conc)...)
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return enc, nil
}

// NewReader returns a streaming zstd decoder reading from r.
func (z *ZstdCompression) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(int(z.conc.DecoderConcurrency)))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	return dec.IOReadCloser(), nil
}

// Compress compresses the input data into a single zstd frame.
// Empty input produces a valid empty frame so that Decompress always
// round-trips.
//
// The operation is thread-safe and can be called concurrently.
func (z *ZstdCompression) Compress(data []byte) ([]byte, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()

	if z.encoder == nil {
		return nil, ErrClosed
	}
	return z.encoder.EncodeAll(data, make([]byte, 0, max(len(data)/2, smallPayload))), nil
}

// Decompress restores the original data from its compressed form.
// The operation is thread-safe and can be called concurrently.
//
// Returns an error if:
// - The input data is not valid zstd compressed data
// - Decompression fails for any other reason
func (z *ZstdCompression) Decompress(data []byte) ([]byte, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()

	if z.decoder == nil {
		return nil, ErrClosed
	}

	decompressed, err := z.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}

	return decompressed, nil
}

// Level returns the current compression level.
func (z *ZstdCompression) Level() int {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return int(z.level)
}

// Close releases the shared encoder and decoder. Streams already returned by
// NewWriter/NewReader are unaffected; whole-buffer calls fail with ErrClosed.
func (z *ZstdCompression) Close() error {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.encoder == nil {
		return nil
	}

	err := z.encoder.Close()
	z.decoder.Close()
	z.encoder, z.decoder = nil, nil

	if err != nil {
		return fmt.Errorf("error closing encoder : %w", err)
	}
	return nil
}
