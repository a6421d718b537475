package gzipfile

import (
	"bytes"
	stdgzip "compress/gzip"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	kerrors "github.com/iamNilotpal/kit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

type trackingReader struct {
	io.Reader
	closed bool
}

func (t *trackingReader) Close() error {
	t.closed = true
	return nil
}

func TestRoundTripWithCharset(t *testing.T) {
	content := []byte(strings.Repeat("列,值\n1,2\n", 300))
	name := "报告-2024.csv"
	modTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	src := &trackingReader{Reader: bytes.NewReader(content)}
	var packed bytes.Buffer
	n, err := Compress(&packed, src, Options{Name: "exports/" + name, Charset: "gbk", ModTime: modTime, Level: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)
	assert.False(t, src.closed, "caller's reader must stay open")

	// The header holds the GBK bytes of the base name.
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(name))
	require.NoError(t, err)
	zr, err := stdgzip.NewReader(bytes.NewReader(packed.Bytes()))
	require.NoError(t, err)
	raw := make([]byte, 0, len(zr.Name))
	for _, r := range zr.Name {
		raw = append(raw, byte(r))
	}
	assert.Equal(t, gbk, raw)

	var out bytes.Buffer
	gotName, written, err := Decompress(&out, bytes.NewReader(packed.Bytes()), Options{Charset: "gbk"})
	require.NoError(t, err)
	assert.Equal(t, name, gotName)
	assert.Equal(t, int64(len(content)), written)
	assert.Equal(t, content, out.Bytes())
}

func TestRoundTripDefaultCharset(t *testing.T) {
	var packed bytes.Buffer
	_, err := Compress(&packed, strings.NewReader("hello"), Options{Name: "grüße.txt", Comment: "übersicht"})
	require.NoError(t, err)

	r, err := Open(&packed, Options{})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "grüße.txt", r.Name)
	assert.Equal(t, "übersicht", r.Comment)
	assert.True(t, r.Embedded)

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestOpenFallsBackToOuterName(t *testing.T) {
	var packed bytes.Buffer
	_, err := Compress(&packed, strings.NewReader("{}"), Options{})
	require.NoError(t, err)

	r, err := Open(bytes.NewReader(packed.Bytes()), Options{Name: "/var/data/events.json.gz"})
	require.NoError(t, err)
	assert.Equal(t, "events.json", r.Name)
	assert.False(t, r.Embedded)
	require.NoError(t, r.Close())

	r, err = Open(bytes.NewReader(packed.Bytes()), Options{})
	require.NoError(t, err)
	assert.Equal(t, "", r.Name)
}

func TestCompressToBuffer(t *testing.T) {
	content := make([]byte, 8*1024)
	_, err := rand.Read(content)
	require.NoError(t, err)

	buf, err := CompressToBuffer(bytes.NewReader(content), Options{Name: "big.bin", SegmentSize: 512})
	require.NoError(t, err)
	defer buf.Release()
	assert.Greater(t, buf.Segments(), 1)
	assert.Greater(t, buf.Len(), int64(len(content)))

	var out bytes.Buffer
	name, _, err := Decompress(&out, buf.NewReader(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "big.bin", name)
	assert.Equal(t, content, out.Bytes())
}

func TestArgumentErrors(t *testing.T) {
	_, err := Compress(nil, strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, kerrors.ErrInvalidArgument)

	_, err = Compress(io.Discard, nil, Options{})
	assert.ErrorIs(t, err, kerrors.ErrInvalidArgument)

	_, err = Compress(io.Discard, strings.NewReader(""), Options{Level: 42})
	assert.True(t, kerrors.IsValidationError(err))

	_, err = Compress(io.Discard, strings.NewReader(""), Options{Name: "a", Charset: "no-such-charset"})
	ve := kerrors.AsValidationError(err)
	require.NotNil(t, ve)
	assert.Equal(t, "charset", ve.Field)

	_, _, err = Decompress(nil, strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, kerrors.ErrInvalidArgument)

	_, err = Open(nil, Options{})
	assert.ErrorIs(t, err, kerrors.ErrInvalidArgument)
}

func TestUnrepresentableName(t *testing.T) {
	_, err := Compress(io.Discard, strings.NewReader("x"), Options{Name: "\U0001F600.txt", Charset: "iso-8859-2"})
	require.Error(t, err)
	assert.Equal(t, kerrors.ErrorEncoding, kerrors.CategoryOf(err))
}

func TestCorruptInput(t *testing.T) {
	_, err := Open(strings.NewReader("definitely not gzip"), Options{})
	require.Error(t, err)
	assert.Equal(t, kerrors.ErrorCompression, kerrors.CategoryOf(err))

	var packed bytes.Buffer
	_, err = Compress(&packed, strings.NewReader(strings.Repeat("abc", 1000)), Options{})
	require.NoError(t, err)
	truncated := packed.Bytes()[:packed.Len()/2]

	_, _, err = Decompress(io.Discard, bytes.NewReader(truncated), Options{})
	require.Error(t, err)
}

func TestStripSuffix(t *testing.T) {
	tests := map[string]string{
		"a.txt.gz":    "a.txt",
		"A.TXT.GZ":    "A.TXT",
		"backup.tgz":  "backup.tar",
		"backup.taz":  "backup.tar",
		"log-gz":      "log",
		"file.z":      "file",
		"file_z":      "file",
		"plain.txt":   "plain.txt",
		".gz":         ".gz",
		"archive.zip": "archive.zip",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripSuffix(in), in)
	}
}

func TestCompressAndDecompressFile(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "数据.txt")
	content := []byte("line one\nline two\n")
	require.NoError(t, os.WriteFile(srcPath, content, 0644))

	gzPath, err := CompressFile(srcPath, "", Options{Charset: "gb18030"})
	require.NoError(t, err)
	assert.Equal(t, srcPath+".gz", gzPath)

	outDir := filepath.Join(dir, "out")
	outPath, err := DecompressFile(gzPath, outDir, Options{Charset: "gb18030"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "数据.txt"), outPath)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestDecompressFileWithoutEmbeddedName(t *testing.T) {
	dir := t.TempDir()
	gzPath := filepath.Join(dir, "metrics.csv.gz")

	f, err := os.Create(gzPath)
	require.NoError(t, err)
	_, err = Compress(f, strings.NewReader("a,b\n"), Options{})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	outPath, err := DecompressFile(gzPath, "", Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "metrics.csv"), outPath)
}

func TestDecompressFileSanitizesEmbeddedName(t *testing.T) {
	dir := t.TempDir()
	gzPath := filepath.Join(dir, "evil.gz")

	var packed bytes.Buffer
	zw := stdgzip.NewWriter(&packed)
	zw.Name = "../../escape.txt"
	_, err := zw.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(gzPath, packed.Bytes(), 0644))

	outDir := filepath.Join(dir, "out")
	outPath, err := DecompressFile(gzPath, outDir, Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "escape.txt"), outPath)
}

func TestFileHelpersKeepExistingOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("first"), 0644))

	gzPath, err := CompressFile(src, "", Options{})
	require.NoError(t, err)

	_, err = CompressFile(src, "", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrExist)

	require.NoError(t, os.WriteFile(src, []byte("second"), 0644))
	_, err = CompressFile(src, "", Options{Force: true})
	require.NoError(t, err)

	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0755))
	existing := filepath.Join(outDir, "notes.txt")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0644))

	_, err = DecompressFile(gzPath, outDir, Options{})
	assert.ErrorIs(t, err, os.ErrExist)
	kept, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(kept))

	_, err = DecompressFile(gzPath, outDir, Options{Force: true})
	require.NoError(t, err)
	replaced, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "second", string(replaced))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "temp files must not be left behind")
}

func TestCompressSmallCopyBuffer(t *testing.T) {
	content := strings.Repeat("copy buffer ", 300)

	var packed bytes.Buffer
	n, err := Compress(&packed, strings.NewReader(content), Options{SegmentSize: 16})
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)

	var out bytes.Buffer
	_, _, err = Decompress(&out, &packed, Options{})
	require.NoError(t, err)
	assert.Equal(t, content, out.String())
}

func TestCompressFileMissingSource(t *testing.T) {
	_, err := CompressFile(filepath.Join(t.TempDir(), "missing"), "", Options{})
	require.Error(t, err)
	assert.Equal(t, kerrors.ErrorIO, kerrors.CategoryOf(err))

	_, err = CompressFile("", "", Options{})
	assert.ErrorIs(t, err, kerrors.ErrInvalidArgument)
}
