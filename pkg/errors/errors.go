package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument is the sentinel wrapped by every argument validation
// failure raised at a public call boundary.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrorCategory classifies the failures raised by the helpers in this module.
// It lets callers decide how to report or retry an operation without
// inspecting error strings.
type ErrorCategory int

const (
	// ErrorArgument indicates a caller supplied value was rejected before
	// any work was done.
	ErrorArgument ErrorCategory = iota + 1

	// ErrorIO indicates a failure reading from or writing to a stream or
	// file, such as a closed pipe, a full disk or missing permissions.
	ErrorIO

	// ErrorCompression indicates a failure inside a compressor, such as a
	// corrupt gzip member or an unsupported compression level.
	ErrorCompression

	// ErrorEncoding indicates a character set conversion failure, such as
	// a filename that cannot be represented in the requested charset.
	ErrorEncoding
)

// String returns the string representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorArgument:
		return "argument"
	case ErrorIO:
		return "io"
	case ErrorCompression:
		return "compression"
	case ErrorEncoding:
		return "encoding"
	default:
		return "unknown"
	}
}

// OpError records the operation and category of a failure along with the
// underlying cause.
type OpError struct {
	Err       error
	Operation string
	Timestamp time.Time
	Category  ErrorCategory
}

// NewOpError creates an OpError stamped with the current time.
func NewOpError(category ErrorCategory, operation string, err error) *OpError {
	return &OpError{Err: err, Operation: operation, Category: category, Timestamp: time.Now()}
}

func (e *OpError) Error() string {
	return fmt.Sprintf("[%v] %s: %v", e.Category, e.Operation, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether repeating the operation could succeed.
func (e *OpError) IsRetryable() bool {
	switch e.Category {
	case ErrorIO:
		// The stream or disk may recover (e.g. space freed, device back).
		return true
	case ErrorArgument, ErrorCompression, ErrorEncoding:
		// Same input, same failure.
		return false
	default:
		return false
	}
}

// CategoryOf returns the category of the first OpError in err's chain, or 0
// when there is none.
func CategoryOf(err error) ErrorCategory {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Category
	}
	if IsValidationError(err) {
		return ErrorArgument
	}
	return 0
}
