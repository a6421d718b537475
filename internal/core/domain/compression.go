// Package domain defines option types shared by the compression adapters.
package domain

// CompressionOptions configures a built-in compressor.
type CompressionOptions struct {
	// Level is the compression level in the scheme's own scale:
	//   - gzip:  1 (fastest) to 9 (best), -2 for Huffman only
	//   - zstd:  1 (fastest) to 4 (best), see zstd.EncoderLevel
	//   - lz4:   1 to 9
	//   - bzip2: 1 to 9
	//   - xz:    ignored
	// Zero selects the scheme default.
	Level int

	// EncoderConcurrency specifies the number of goroutines a zstd encoder
	// may use. Must be between 0 and the number of CPUs; 0 means one per CPU.
	EncoderConcurrency uint8

	// DecoderConcurrency specifies the number of goroutines a zstd decoder
	// may use. Same bounds as EncoderConcurrency.
	DecoderConcurrency uint8
}
