// Package ident generates short random identifiers made of two uppercase
// letters followed by decimal digits, e.g. "QX0482".
//
// Identifiers are drawn from math/rand/v2 and are neither unpredictable nor
// guaranteed unique; callers needing either must check for themselves.
package ident

import (
	"math/rand/v2"

	kerrors "github.com/iamNilotpal/kit/pkg/errors"
)

const (
	// MinLength is the shortest identifier: the two letter prefix alone.
	MinLength = 2

	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// Generator draws identifiers from a random source. The zero value is not
// usable; use New or NewGenerator.
type Generator struct {
	intN func(n int) int
}

// New returns a Generator backed by the global math/rand/v2 source, which is
// safe for concurrent use.
func New() *Generator {
	return &Generator{intN: rand.IntN}
}

// NewGenerator returns a Generator reading from src. The returned Generator
// is only as safe for concurrent use as src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{intN: rand.New(src).IntN}
}

// Generate returns an identifier of exactly length characters. It fails with
// a ValidationError wrapping errors.ErrInvalidArgument when length < 2.
func (g *Generator) Generate(length int) (string, error) {
	if length < MinLength {
		return "", kerrors.InvalidArgument("length", length, "identifier length must be at least %d, got %d", MinLength, length)
	}

	b := make([]byte, length)
	for i := range MinLength {
		b[i] = letters[g.intN(len(letters))]
	}
	for i := MinLength; i < length; i++ {
		b[i] = digits[g.intN(len(digits))]
	}
	return string(b), nil
}

var defaultGenerator = New()

// Generate returns an identifier of length characters from the global source.
func Generate(length int) (string, error) {
	return defaultGenerator.Generate(length)
}

// MustGenerate is Generate that panics on an invalid length.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}
