package gzipfile

import (
	"bytes"
	"fmt"
	"strings"

	kerrors "github.com/iamNilotpal/kit/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset is the filename charset used when Options.Charset is empty.
const DefaultCharset = "utf-8"

// lookupCharset resolves a WHATWG encoding label such as "utf-8", "gbk" or
// "shift_jis".
func lookupCharset(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultCharset
	}
	enc, err := htmlindex.Get(strings.TrimSpace(name))
	if err != nil {
		return nil, kerrors.InvalidArgument("charset", name, "unknown charset %q", name)
	}
	return enc, nil
}

// ValidateCharset reports whether name is a known charset label.
func ValidateCharset(name string) error {
	_, err := lookupCharset(name)
	return err
}

// EncodeName converts name to the bytes charset assigns it and returns those
// bytes as the Latin-1 string a gzip header field carries.
func EncodeName(name, charset string) (string, error) {
	if name == "" {
		return "", nil
	}

	enc, err := lookupCharset(charset)
	if err != nil {
		return "", err
	}

	raw, err := enc.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return "", kerrors.NewOpError(kerrors.ErrorEncoding, "encode name",
			fmt.Errorf("%q is not representable in %s: %w", name, charset, err))
	}
	if bytes.IndexByte(raw, 0) >= 0 {
		return "", kerrors.NewOpError(kerrors.ErrorEncoding, "encode name",
			fmt.Errorf("charset %s encodes %q with NUL bytes", charset, name))
	}

	latin1, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", kerrors.NewOpError(kerrors.ErrorEncoding, "encode name", err)
	}
	return string(latin1), nil
}

// DecodeName reverses EncodeName: it recovers the header bytes from the
// Latin-1 string and decodes them with charset.
func DecodeName(header, charset string) (string, error) {
	if header == "" {
		return "", nil
	}

	enc, err := lookupCharset(charset)
	if err != nil {
		return "", err
	}

	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(header))
	if err != nil {
		return "", kerrors.NewOpError(kerrors.ErrorEncoding, "decode name", err)
	}

	name, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", kerrors.NewOpError(kerrors.ErrorEncoding, "decode name",
			fmt.Errorf("header name is not valid %s: %w", charset, err))
	}
	return string(name), nil
}
