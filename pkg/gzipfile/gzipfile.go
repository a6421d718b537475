// Package gzipfile compresses and decompresses single-member gzip streams
// while keeping the original filename.
//
// The gzip header stores the filename as Latin-1 bytes. To carry names in
// other scripts, the name is first encoded with Options.Charset and those
// bytes are written verbatim; decompression reverses the mapping. When the
// container has no name, one is derived from the outer file name by dropping
// the gzip suffix ("report.csv.gz" → "report.csv").
//
// Callers keep ownership of the streams they pass in: nothing here closes a
// caller's reader or writer. Streams created internally are always closed,
// on success and on failure.
package gzipfile

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/iamNilotpal/kit/internal/adapters/compression"
	kerrors "github.com/iamNilotpal/kit/pkg/errors"
	"github.com/iamNilotpal/kit/pkg/pool"
	"github.com/iamNilotpal/kit/pkg/stream"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options controls compression and naming.
type Options struct {
	// Name is the original filename. On compression it is embedded in the
	// header (directory components are dropped). On decompression it is the
	// outer file name, used only when the header carries no name.
	Name string

	// Comment is embedded in the header on compression. It is encoded with
	// Charset like Name.
	Comment string

	// ModTime is embedded in the header on compression. Zero leaves it unset.
	ModTime time.Time

	// Level is the gzip level, 1 (fastest) to 9 (best); 0 selects the default.
	Level int

	// Charset is the WHATWG label of the encoding used for header strings,
	// e.g. "utf-8" (default), "gbk" or "shift_jis".
	Charset string

	// SegmentSize is the segment length for CompressToBuffer and the copy
	// buffer of Compress; 0 selects stream.DefaultSegmentSize.
	SegmentSize int

	// Force lets CompressFile and DecompressFile replace an existing output
	// file. Without it they fail with an error wrapping os.ErrExist.
	Force bool

	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

func (o Options) segmentSize() int {
	if o.SegmentSize <= 0 {
		return stream.DefaultSegmentSize
	}
	return o.SegmentSize
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Compress writes src to dst as a gzip stream and returns the number of
// uncompressed bytes read. Neither src nor dst is closed.
func Compress(dst io.Writer, src io.Reader, opts Options) (n int64, err error) {
	if dst == nil {
		return 0, kerrors.InvalidArgument("dst", nil, "writer is required")
	}
	if src == nil {
		return 0, kerrors.InvalidArgument("src", nil, "reader is required")
	}

	gz, err := compression.NewGzipCompression(opts.Level)
	if err != nil {
		return 0, kerrors.NewValidationError("level", opts.Level, fmt.Errorf("%w: %v", kerrors.ErrInvalidArgument, err))
	}

	var hdr gzip.Header
	if opts.Name != "" {
		if hdr.Name, err = EncodeName(path.Base(filepath.ToSlash(opts.Name)), opts.Charset); err != nil {
			return 0, err
		}
	}
	if hdr.Comment, err = EncodeName(opts.Comment, opts.Charset); err != nil {
		return 0, err
	}
	hdr.ModTime = opts.ModTime

	zw, err := gz.NewHeaderWriter(dst, hdr)
	if err != nil {
		return 0, kerrors.NewOpError(kerrors.ErrorCompression, "gzip compress", err)
	}
	defer func() {
		if cerr := zw.Close(); cerr != nil {
			err = multierr.Append(err, kerrors.NewOpError(kerrors.ErrorIO, "gzip close", cerr))
		}
	}()

	seg := pool.ForSize(opts.segmentSize())
	copyBuf := seg.Get()
	defer seg.Put(copyBuf)

	// Hide src's WriterTo so the copy goes through copyBuf.
	n, err = io.CopyBuffer(zw, struct{ io.Reader }{src}, copyBuf)
	if err != nil {
		return n, kerrors.NewOpError(kerrors.ErrorIO, "gzip compress", err)
	}

	opts.logger().Debug("gzip compressed",
		zap.String("name", opts.Name), zap.String("charset", opts.Charset), zap.Int64("bytes", n))
	return n, nil
}

// CompressToBuffer compresses src into a segmented in-memory buffer.
func CompressToBuffer(src io.Reader, opts Options) (*stream.Buffer, error) {
	buf := stream.NewBuffer(opts.SegmentSize)
	if _, err := Compress(buf, src, opts); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

// Reader yields the decompressed content of a gzip stream.
type Reader struct {
	// Name is the embedded filename decoded with the configured charset, or
	// the outer name with its gzip suffix removed when none is embedded.
	Name string

	// Embedded reports whether Name came from the gzip header.
	Embedded bool

	Comment string
	ModTime time.Time

	zr *gzip.Reader
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.zr.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, kerrors.NewOpError(kerrors.ErrorCompression, "gzip read", err)
	}
	return n, err
}

// Close releases the decoder. The source reader is left open.
func (r *Reader) Close() error {
	return r.zr.Close()
}

// Open reads the gzip header from src and returns a Reader over the content.
// opts.Name is the outer file name used when the header has no name.
func Open(src io.Reader, opts Options) (*Reader, error) {
	if src == nil {
		return nil, kerrors.InvalidArgument("src", nil, "reader is required")
	}

	zr, err := gzip.NewReader(src)
	if err != nil {
		return nil, kerrors.NewOpError(kerrors.ErrorCompression, "gzip open", err)
	}
	// One member per file; a trailing member would belong to another file.
	zr.Multistream(false)

	r := &Reader{ModTime: zr.ModTime, zr: zr}

	if zr.Name != "" {
		if r.Name, err = DecodeName(zr.Name, opts.Charset); err != nil {
			zr.Close()
			return nil, err
		}
		r.Embedded = true
	} else if opts.Name != "" {
		r.Name = StripSuffix(path.Base(filepath.ToSlash(opts.Name)))
	}

	if r.Comment, err = DecodeName(zr.Comment, opts.Charset); err != nil {
		zr.Close()
		return nil, err
	}

	opts.logger().Debug("gzip opened",
		zap.String("name", r.Name), zap.Bool("embedded", r.Embedded), zap.Time("modTime", r.ModTime))
	return r, nil
}

// Decompress writes the content of the gzip stream src to dst and returns the
// recovered filename and the number of bytes written.
func Decompress(dst io.Writer, src io.Reader, opts Options) (name string, n int64, err error) {
	if dst == nil {
		return "", 0, kerrors.InvalidArgument("dst", nil, "writer is required")
	}

	r, err := Open(src, opts)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			err = multierr.Append(err, kerrors.NewOpError(kerrors.ErrorIO, "gzip close", cerr))
		}
	}()

	n, err = io.Copy(dst, r)
	if err != nil {
		var oe *kerrors.OpError
		if !errors.As(err, &oe) {
			err = kerrors.NewOpError(kerrors.ErrorIO, "gzip decompress", err)
		}
		return r.Name, n, err
	}
	return r.Name, n, nil
}

// suffixes recognised by StripSuffix, checked case-insensitively. Values are
// the replacement suffix.
var suffixes = []struct{ from, to string }{
	{".tgz", ".tar"},
	{".taz", ".tar"},
	{".gz", ""},
	{"-gz", ""},
	{".z", ""},
	{"-z", ""},
	{"_z", ""},
}

// StripSuffix removes a conventional gzip suffix from name: "a.txt.gz" →
// "a.txt", "b.tgz" → "b.tar". Names without one are returned unchanged.
func StripSuffix(name string) string {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if len(name) > len(s.from) && strings.HasSuffix(lower, s.from) {
			return name[:len(name)-len(s.from)] + s.to
		}
	}
	return name
}
