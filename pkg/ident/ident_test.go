package ident

import (
	"math/rand/v2"
	"testing"

	kerrors "github.com/iamNilotpal/kit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertShape(t *testing.T, id string, length int) {
	t.Helper()
	require.Len(t, id, length)
	for i, c := range id {
		if i < MinLength {
			assert.True(t, c >= 'A' && c <= 'Z', "position %d of %q is %q, want A-Z", i, id, c)
		} else {
			assert.True(t, c >= '0' && c <= '9', "position %d of %q is %q, want 0-9", i, id, c)
		}
	}
}

func TestGenerateShape(t *testing.T) {
	for length := MinLength; length <= 32; length++ {
		for range 20 {
			id, err := Generate(length)
			require.NoError(t, err)
			assertShape(t, id, length)
		}
	}
}

func TestGenerateRejectsShortLength(t *testing.T) {
	for _, length := range []int{1, 0, -5} {
		id, err := Generate(length)
		assert.Empty(t, id)
		require.Error(t, err)
		assert.ErrorIs(t, err, kerrors.ErrInvalidArgument)

		ve := kerrors.AsValidationError(err)
		require.NotNil(t, ve)
		assert.Equal(t, "length", ve.Field)
		assert.Equal(t, length, ve.Value)
	}

	assert.Panics(t, func() { MustGenerate(1) })
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewGenerator(rand.NewPCG(1, 2))
	b := NewGenerator(rand.NewPCG(1, 2))

	for range 10 {
		x, err := a.Generate(8)
		require.NoError(t, err)
		y, err := b.Generate(8)
		require.NoError(t, err)
		assert.Equal(t, x, y)
		assertShape(t, x, 8)
	}
}

func TestGenerateCoversAlphabet(t *testing.T) {
	g := NewGenerator(rand.NewPCG(7, 7))
	seenLetters := map[byte]bool{}
	seenDigits := map[byte]bool{}

	for range 5000 {
		id := generateWith(t, g, 4)
		seenLetters[id[0]] = true
		seenLetters[id[1]] = true
		seenDigits[id[2]] = true
		seenDigits[id[3]] = true
	}

	assert.Len(t, seenLetters, 26)
	assert.Len(t, seenDigits, 10)
}

func generateWith(t *testing.T, g *Generator, length int) string {
	t.Helper()
	id, err := g.Generate(length)
	require.NoError(t, err)
	return id
}
