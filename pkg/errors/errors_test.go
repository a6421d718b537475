package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodedErrorMessage(t *testing.T) {
	err := Newf("ACL-403", "user {} may not {} {}", "ann", "read", "/etc")
	assert.Equal(t, "user ann may not read /etc", err.Error())
	assert.Equal(t, "ACL-403", err.Code)
	assert.Nil(t, errors.Unwrap(err))
}

func TestNamedError(t *testing.T) {
	err := Named("", "role {role} missing for {user}", map[string]any{"role": "admin", "user": "bob"})
	assert.Equal(t, "role admin missing for bob", err.Error())
	assert.Equal(t, "", CodeOf(err))
}

func TestWrapfKeepsCause(t *testing.T) {
	err := Wrapf(io.ErrUnexpectedEOF, "IO", "reading {}", "policy.json")

	assert.Equal(t, "reading policy.json: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	outer := fmt.Errorf("load: %w", err)
	assert.Equal(t, "IO", CodeOf(outer))
	assert.True(t, IsCode(outer, "IO"))
	assert.False(t, IsCode(outer, "ACL"))
}

func TestCodeOfNested(t *testing.T) {
	inner := Newf("INNER", "inner")
	outer := Wrapf(inner, "", "outer")

	assert.Equal(t, "INNER", CodeOf(outer))
	assert.True(t, IsCode(outer, "INNER"))

	cp := Newf("X", "msg").WithCause(io.EOF)
	assert.ErrorIs(t, cp, io.EOF)
	assert.Equal(t, "msg: EOF", cp.Error())
}

func TestValidationError(t *testing.T) {
	err := InvalidArgument("length", 1, "must be at least %d", 2)

	require.True(t, IsValidationError(err))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	ve := AsValidationError(fmt.Errorf("wrapped: %w", err))
	require.NotNil(t, ve)
	assert.Equal(t, "length", ve.Field)
	assert.Equal(t, 1, ve.Value)
	assert.Equal(t, ErrorArgument, CategoryOf(err))
	assert.Nil(t, AsValidationError(io.EOF))
}

func TestOpError(t *testing.T) {
	err := NewOpError(ErrorIO, "copy", io.ErrShortWrite)

	assert.Equal(t, "[io] copy: short write", err.Error())
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.True(t, err.IsRetryable())
	assert.False(t, NewOpError(ErrorCompression, "inflate", io.EOF).IsRetryable())
	assert.Equal(t, ErrorIO, CategoryOf(fmt.Errorf("x: %w", err)))
	assert.Equal(t, ErrorCategory(0), CategoryOf(io.EOF))
	assert.Equal(t, "unknown", ErrorCategory(42).String())
}
