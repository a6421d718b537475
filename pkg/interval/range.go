// Package interval provides a generic range type with open, closed and
// unbounded ends, and a JSON module that controls how its endpoints are
// encoded.
package interval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNilEndpoint is returned when encoding a bounded end whose value is nil.
// Such an end would be written as null, which decodes as unbounded.
var ErrNilEndpoint = errors.New("interval: bounded endpoint is nil")

// BoundType says whether an endpoint belongs to the range.
type BoundType int

const (
	BoundOpen BoundType = iota
	BoundClosed
)

func (b BoundType) String() string {
	switch b {
	case BoundOpen:
		return "OPEN"
	case BoundClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("BoundType(%d)", int(b))
	}
}

// ParseBoundType parses "OPEN" or "CLOSED", ignoring case.
func ParseBoundType(s string) (BoundType, error) {
	switch strings.ToUpper(s) {
	case "OPEN":
		return BoundOpen, nil
	case "CLOSED":
		return BoundClosed, nil
	default:
		return 0, fmt.Errorf("interval: unknown bound type %q", s)
	}
}

type endpoint[T any] struct {
	value   T
	bound   BoundType
	present bool
}

// Range is a contiguous span of T values. Either end may be unbounded. The
// zero value is the range of all values.
type Range[T any] struct {
	lower endpoint[T]
	upper endpoint[T]
}

// nilValue reports whether a present endpoint holds a nil pointer, interface,
// map, slice, func or channel.
func (e endpoint[T]) nilValue() bool {
	if !e.present {
		return false
	}
	v := reflect.ValueOf(&e.value).Elem()
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func bounded[T any](v T, b BoundType) endpoint[T] {
	return endpoint[T]{value: v, bound: b, present: true}
}

// Closed is [lower..upper].
func Closed[T any](lower, upper T) Range[T] {
	return Range[T]{lower: bounded(lower, BoundClosed), upper: bounded(upper, BoundClosed)}
}

// Open is (lower..upper).
func Open[T any](lower, upper T) Range[T] {
	return Range[T]{lower: bounded(lower, BoundOpen), upper: bounded(upper, BoundOpen)}
}

// ClosedOpen is [lower..upper).
func ClosedOpen[T any](lower, upper T) Range[T] {
	return Range[T]{lower: bounded(lower, BoundClosed), upper: bounded(upper, BoundOpen)}
}

// OpenClosed is (lower..upper].
func OpenClosed[T any](lower, upper T) Range[T] {
	return Range[T]{lower: bounded(lower, BoundOpen), upper: bounded(upper, BoundClosed)}
}

// AtLeast is [lower..+∞).
func AtLeast[T any](lower T) Range[T] {
	return Range[T]{lower: bounded(lower, BoundClosed)}
}

// GreaterThan is (lower..+∞).
func GreaterThan[T any](lower T) Range[T] {
	return Range[T]{lower: bounded(lower, BoundOpen)}
}

// AtMost is (-∞..upper].
func AtMost[T any](upper T) Range[T] {
	return Range[T]{upper: bounded(upper, BoundClosed)}
}

// LessThan is (-∞..upper).
func LessThan[T any](upper T) Range[T] {
	return Range[T]{upper: bounded(upper, BoundOpen)}
}

// Singleton is [v..v].
func Singleton[T any](v T) Range[T] {
	return Closed(v, v)
}

// All is (-∞..+∞).
func All[T any]() Range[T] {
	return Range[T]{}
}

// Between builds a range with explicit bound types on both ends.
func Between[T any](lower T, lowerType BoundType, upper T, upperType BoundType) Range[T] {
	return Range[T]{lower: bounded(lower, lowerType), upper: bounded(upper, upperType)}
}

func (r Range[T]) HasLowerBound() bool { return r.lower.present }
func (r Range[T]) HasUpperBound() bool { return r.upper.present }

// LowerEndpoint returns the lower endpoint, or the zero T when unbounded.
func (r Range[T]) LowerEndpoint() T { return r.lower.value }

// UpperEndpoint returns the upper endpoint, or the zero T when unbounded.
func (r Range[T]) UpperEndpoint() T { return r.upper.value }

func (r Range[T]) LowerBoundType() BoundType { return r.lower.bound }
func (r Range[T]) UpperBoundType() BoundType { return r.upper.bound }

// Contains reports whether v lies in r, using cmp to order values
// (negative when a < b, zero when equal, positive when a > b).
func (r Range[T]) Contains(v T, cmp func(a, b T) int) bool {
	if r.lower.present {
		c := cmp(v, r.lower.value)
		if c < 0 || (c == 0 && r.lower.bound == BoundOpen) {
			return false
		}
	}
	if r.upper.present {
		c := cmp(v, r.upper.value)
		if c > 0 || (c == 0 && r.upper.bound == BoundOpen) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no value can satisfy r, e.g. [3..3) or (5..1].
func (r Range[T]) IsEmpty(cmp func(a, b T) int) bool {
	if !r.lower.present || !r.upper.present {
		return false
	}
	c := cmp(r.lower.value, r.upper.value)
	if c > 0 {
		return true
	}
	return c == 0 && (r.lower.bound == BoundOpen || r.upper.bound == BoundOpen)
}

// String renders r as e.g. "[1..5)" or "(-∞..3]".
func (r Range[T]) String() string {
	var sb strings.Builder
	if r.lower.present {
		if r.lower.bound == BoundClosed {
			sb.WriteByte('[')
		} else {
			sb.WriteByte('(')
		}
		fmt.Fprint(&sb, r.lower.value)
	} else {
		sb.WriteString("(-∞")
	}

	sb.WriteString("..")

	if r.upper.present {
		fmt.Fprint(&sb, r.upper.value)
		if r.upper.bound == BoundClosed {
			sb.WriteByte(']')
		} else {
			sb.WriteByte(')')
		}
	} else {
		sb.WriteString("+∞)")
	}
	return sb.String()
}
