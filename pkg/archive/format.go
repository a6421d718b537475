// Package archive names archive formats and resolves which compressor serves
// each one.
//
// Tar-combined formats come in a long form ("tar.gz") and a short form
// ("tgz"). Resolve fills in the missing half of each pair so that callers may
// register either spelling:
//
//	cs := archive.Resolve([]*archive.Registration{
//		{Format: archive.TarGz, Compressor: gz},
//	})
//	c, _ := cs.Get(archive.Tgz) // same instance as gz
package archive

import (
	"fmt"
	"strings"
)

// Format identifies a compression or container scheme. The set is closed;
// ParseFormat rejects anything else.
type Format string

const (
	Tar   Format = "tar"
	Gzip  Format = "gz"
	Bzip2 Format = "bz2"
	Lz    Format = "lz"
	Xz    Format = "xz"
	Zstd  Format = "zst"
	LZ4   Format = "lz4"

	TarGz  Format = "tar.gz"
	TarBz2 Format = "tar.bz2"
	TarLz  Format = "tar.lz"
	TarXz  Format = "tar.xz"
	TarZst Format = "tar.zst"

	Tgz  Format = "tgz"
	Tbz2 Format = "tbz2"
	Tlz  Format = "tlz"
	Txz  Format = "txz"
	Tzst Format = "tzst"
)

var formats = []Format{
	Tar, Gzip, Bzip2, Lz, Xz, Zstd, LZ4,
	TarGz, TarBz2, TarLz, TarXz, TarZst,
	Tgz, Tbz2, Tlz, Txz, Tzst,
}

// aliasPairs lists each long-form tar format with its short-form synonym.
var aliasPairs = [...][2]Format{
	{TarGz, Tgz},
	{TarBz2, Tbz2},
	{TarLz, Tlz},
	{TarXz, Txz},
	{TarZst, Tzst},
}

// extra spellings accepted by ParseFormat.
var synonyms = map[string]Format{
	"gzip":     Gzip,
	"bzip2":    Bzip2,
	"zstd":     Zstd,
	"tar.gzip": TarGz,
	"tar.bz":   TarBz2,
	"tar.zstd": TarZst,
	"tbz":      Tbz2,
}

// Formats returns every known format.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// AliasPairs returns the long/short pairs in fixed order: gzip, bzip2, lz,
// xz, zstd.
func AliasPairs() [][2]Format {
	out := make([][2]Format, len(aliasPairs))
	copy(out, aliasPairs[:])
	return out
}

// String returns the tag, e.g. "tar.gz".
func (f Format) String() string {
	return string(f)
}

// Extension returns the conventional file suffix including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Valid reports whether f belongs to the known set.
func (f Format) Valid() bool {
	for _, known := range formats {
		if f == known {
			return true
		}
	}
	return false
}

// IsTar reports whether f is a tar container, compressed or not.
func (f Format) IsTar() bool {
	if f == Tar {
		return true
	}
	_, ok := f.Counterpart()
	return ok
}

// Counterpart returns the other member of f's alias pair.
func (f Format) Counterpart() (Format, bool) {
	for _, pair := range aliasPairs {
		switch f {
		case pair[0]:
			return pair[1], true
		case pair[1]:
			return pair[0], true
		}
	}
	return "", false
}

// ParseFormat parses a format tag, ignoring case and a leading dot. Common
// long spellings such as "gzip" or "tar.zstd" are accepted.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))

	if f := Format(name); f.Valid() {
		return f, nil
	}
	if f, ok := synonyms[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown archive format: %q", s)
}
