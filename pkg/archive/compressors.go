package archive

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/iamNilotpal/kit/internal/adapters/compression"
	"github.com/iamNilotpal/kit/internal/core/ports"
	"go.uber.org/multierr"
)

// Compressor produces and consumes one compression scheme as streams.
type Compressor = ports.Compressor

// Registration binds a format to the compressor that serves it.
type Registration struct {
	Format     Format
	Compressor Compressor
}

// Compressors is a read-only format to compressor table. It is safe for
// concurrent use once returned by Resolve.
type Compressors struct {
	table map[Format]Compressor
}

// Resolve builds a Compressors table from regs. Nil registrations and nil
// compressors are skipped; a later registration for the same format
// replaces an earlier one. Then, for each long/short alias pair with
// exactly one member registered, the other member is bound to the same
// compressor instance. Explicit registrations are never overwritten.
func Resolve(regs []*Registration) *Compressors {
	table := make(map[Format]Compressor, len(regs)+len(aliasPairs))
	for _, reg := range regs {
		if reg == nil || reg.Compressor == nil {
			continue
		}
		table[reg.Format] = reg.Compressor
	}
	return &Compressors{table: fillAliases(table)}
}

// ResolveMap is Resolve over a map. m is not modified.
func ResolveMap(m map[Format]Compressor) *Compressors {
	table := make(map[Format]Compressor, len(m)+len(aliasPairs))
	for f, c := range m {
		if c != nil {
			table[f] = c
		}
	}
	return &Compressors{table: fillAliases(table)}
}

func fillAliases(table map[Format]Compressor) map[Format]Compressor {
	for _, pair := range aliasPairs {
		long, hasLong := table[pair[0]]
		short, hasShort := table[pair[1]]

		switch {
		case hasLong && !hasShort:
			table[pair[1]] = long
		case hasShort && !hasLong:
			table[pair[0]] = short
		}
	}
	return table
}

// Get returns the compressor for f.
func (c *Compressors) Get(f Format) (Compressor, bool) {
	comp, ok := c.table[f]
	return comp, ok
}

// MustGet is Get that panics when f has no compressor.
func (c *Compressors) MustGet(f Format) Compressor {
	comp, ok := c.table[f]
	if !ok {
		panic(fmt.Sprintf("archive: no compressor for format %q", f))
	}
	return comp
}

// Has reports whether f has a compressor.
func (c *Compressors) Has(f Format) bool {
	_, ok := c.table[f]
	return ok
}

// Len returns the number of formats with a compressor.
func (c *Compressors) Len() int {
	return len(c.table)
}

// Formats returns the formats with a compressor, sorted.
func (c *Compressors) Formats() []Format {
	out := make([]Format, 0, len(c.table))
	for f := range c.table {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Map returns a copy of the table.
func (c *Compressors) Map() map[Format]Compressor {
	out := make(map[Format]Compressor, len(c.table))
	for f, comp := range c.table {
		out[f] = comp
	}
	return out
}

// Close closes every distinct compressor in the table that implements
// io.Closer, such as the zstd compressor's shared encoder and decoder.
// Aliased formats share an instance, which is closed once. The table must
// not be used for whole-buffer calls afterwards.
func (c *Compressors) Close() error {
	return closeAll(c.table)
}

func closeAll(table map[Format]Compressor) error {
	var err error
	seen := make(map[Compressor]struct{}, len(table))
	for _, f := range slices.Sorted(maps.Keys(table)) {
		comp := table[f]
		closer, ok := comp.(io.Closer)
		if !ok {
			continue
		}
		if reflect.TypeOf(comp).Comparable() {
			if _, done := seen[comp]; done {
				continue
			}
			seen[comp] = struct{}{}
		}
		err = multierr.Append(err, closer.Close())
	}
	return err
}

// ForPath picks the compressor whose format extension is the longest suffix
// of name, so "a.tar.gz" resolves to TarGz rather than Gzip.
func (c *Compressors) ForPath(name string) (Format, Compressor, bool) {
	lower := strings.ToLower(name)

	var (
		best    Format
		bestLen int
	)
	for f := range c.table {
		ext := f.Extension()
		if len(ext) > bestLen && strings.HasSuffix(lower, ext) {
			best, bestLen = f, len(ext)
		}
	}
	if bestLen == 0 {
		return "", nil, false
	}
	return best, c.table[best], true
}

// Options sets levels for the built-in compressors. Zero keeps each
// scheme's default.
type Options struct {
	GzipLevel  int
	ZstdLevel  int
	LZ4Level   int
	Bzip2Level int
}

// Default registers the built-in compressors under their plain and long tar
// formats and resolves aliases. The lz pair has no built-in compressor.
// Callers should Close the result to release the zstd encoder and decoder.
func Default(opts Options) (*Compressors, error) {
	build := func(scheme string, level int) (Compressor, error) {
		o := compression.DefaultOptions()
		o.Level = level
		c, err := compression.New(scheme, o)
		if err != nil {
			return nil, fmt.Errorf("%s compressor: %w", scheme, err)
		}
		return c, nil
	}

	builtins := []struct {
		scheme  string
		level   int
		formats []Format
	}{
		{compression.NameNone, 0, []Format{Tar}},
		{compression.NameGzip, opts.GzipLevel, []Format{Gzip, TarGz}},
		{compression.NameBzip2, opts.Bzip2Level, []Format{Bzip2, TarBz2}},
		{compression.NameXz, 0, []Format{Xz, TarXz}},
		{compression.NameZstd, opts.ZstdLevel, []Format{Zstd, TarZst}},
		{compression.NameLZ4, opts.LZ4Level, []Format{LZ4}},
	}

	regs := make([]*Registration, 0, 2*len(builtins))
	built := make(map[Format]Compressor, 2*len(builtins))
	for _, b := range builtins {
		c, err := build(b.scheme, b.level)
		if err != nil {
			return nil, multierr.Append(err, closeAll(built))
		}
		built[b.formats[0]] = c
		for _, f := range b.formats {
			regs = append(regs, &Registration{Format: f, Compressor: c})
		}
	}

	return Resolve(regs), nil
}

// CompressBytes compresses data with c.
func CompressBytes(c Compressor, data []byte) ([]byte, error) {
	if port, ok := c.(ports.CompressionPort); ok {
		return port.Compress(data)
	}

	var buf bytes.Buffer
	w, err := c.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("%s compress: %w", c.Name(), err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s compress: %w", c.Name(), err)
	}
	return buf.Bytes(), nil
}

// DecompressBytes reverses CompressBytes.
func DecompressBytes(c Compressor, data []byte) ([]byte, error) {
	if port, ok := c.(ports.CompressionPort); ok {
		return port.Decompress(data)
	}

	r, err := c.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", c.Name(), err)
	}
	return out, nil
}
