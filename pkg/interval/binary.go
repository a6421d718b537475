package interval

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrUnsupportedEndpoint is returned by the binary form for endpoint types
// other than integers, floats, strings and time.Time.
var ErrUnsupportedEndpoint = errors.New("interval: endpoint type has no binary form")

// Binary layout, in protobuf wire format:
//
//	message Range    { Endpoint lower = 1; Endpoint upper = 2; }
//	message Endpoint { BoundType bound = 1; <scalar> value = 2; }
//
// Signed integers are zigzag varints, unsigned integers varints, floats
// fixed64, strings length-delimited and times their MarshalBinary bytes.
const (
	fieldLower protowire.Number = 1
	fieldUpper protowire.Number = 2
	fieldBound protowire.Number = 1
	fieldValue protowire.Number = 2
)

// MarshalBinary encodes r in a compact protobuf-compatible layout.
func (r Range[T]) MarshalBinary() ([]byte, error) {
	var b []byte
	for _, end := range []struct {
		num protowire.Number
		e   endpoint[T]
	}{{fieldLower, r.lower}, {fieldUpper, r.upper}} {
		if !end.e.present {
			continue
		}
		msg, err := appendEndpoint(nil, end.e)
		if err != nil {
			return nil, err
		}
		b = protowire.AppendTag(b, end.num, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	return b, nil
}

// UnmarshalBinary decodes data written by MarshalBinary. Unknown fields are
// skipped.
func (r *Range[T]) UnmarshalBinary(data []byte) error {
	var decoded Range[T]
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("interval: %w", protowire.ParseError(n))
		}
		data = data[n:]

		if (num == fieldLower || num == fieldUpper) && typ == protowire.BytesType {
			msg, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return fmt.Errorf("interval: %w", protowire.ParseError(m))
			}
			e, err := consumeEndpoint[T](msg)
			if err != nil {
				return err
			}
			if num == fieldLower {
				decoded.lower = e
			} else {
				decoded.upper = e
			}
			data = data[m:]
			continue
		}

		m := protowire.ConsumeFieldValue(num, typ, data)
		if m < 0 {
			return fmt.Errorf("interval: %w", protowire.ParseError(m))
		}
		data = data[m:]
	}

	*r = decoded
	return nil
}

func appendEndpoint[T any](b []byte, e endpoint[T]) ([]byte, error) {
	b = protowire.AppendTag(b, fieldBound, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.bound))

	if t, ok := any(e.value).(time.Time); ok {
		raw, err := t.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("interval: %w", err)
		}
		b = protowire.AppendTag(b, fieldValue, protowire.BytesType)
		return protowire.AppendBytes(b, raw), nil
	}

	v := reflect.ValueOf(&e.value).Elem()
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b = protowire.AppendTag(b, fieldValue, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b = protowire.AppendTag(b, fieldValue, protowire.VarintType)
		b = protowire.AppendVarint(b, v.Uint())
	case reflect.Float32, reflect.Float64:
		b = protowire.AppendTag(b, fieldValue, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(v.Float()))
	case reflect.String:
		b = protowire.AppendTag(b, fieldValue, protowire.BytesType)
		b = protowire.AppendString(b, v.String())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEndpoint, v.Type())
	}
	return b, nil
}

func consumeEndpoint[T any](msg []byte) (endpoint[T], error) {
	e := endpoint[T]{bound: BoundClosed}
	var haveValue bool

	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return e, fmt.Errorf("interval: %w", protowire.ParseError(n))
		}
		msg = msg[n:]

		switch {
		case num == fieldBound && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(msg)
			if m < 0 {
				return e, fmt.Errorf("interval: %w", protowire.ParseError(m))
			}
			if v > uint64(BoundClosed) {
				return e, fmt.Errorf("interval: unknown bound type %d", v)
			}
			e.bound = BoundType(v)
			msg = msg[m:]
		case num == fieldValue:
			m, err := consumeValue(&e.value, typ, msg)
			if err != nil {
				return e, err
			}
			haveValue = true
			msg = msg[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, msg)
			if m < 0 {
				return e, fmt.Errorf("interval: %w", protowire.ParseError(m))
			}
			msg = msg[m:]
		}
	}

	if !haveValue {
		return e, errMissingEndpoint
	}
	e.present = true
	return e, nil
}

func consumeValue[T any](dst *T, typ protowire.Type, b []byte) (int, error) {
	if tp, ok := any(dst).(*time.Time); ok {
		if typ != protowire.BytesType {
			return 0, fmt.Errorf("interval: time endpoint has wire type %d", typ)
		}
		raw, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, fmt.Errorf("interval: %w", protowire.ParseError(n))
		}
		if err := tp.UnmarshalBinary(raw); err != nil {
			return 0, fmt.Errorf("interval: %w", err)
		}
		return n, nil
	}

	v := reflect.ValueOf(dst).Elem()
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x, n := consumeVarint(typ, b)
		if n < 0 {
			return 0, fmt.Errorf("interval: %w", protowire.ParseError(n))
		}
		i := protowire.DecodeZigZag(x)
		if v.OverflowInt(i) {
			return 0, fmt.Errorf("interval: %d overflows %s", i, v.Type())
		}
		v.SetInt(i)
		return n, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		x, n := consumeVarint(typ, b)
		if n < 0 {
			return 0, fmt.Errorf("interval: %w", protowire.ParseError(n))
		}
		if v.OverflowUint(x) {
			return 0, fmt.Errorf("interval: %d overflows %s", x, v.Type())
		}
		v.SetUint(x)
		return n, nil
	case reflect.Float32, reflect.Float64:
		if typ != protowire.Fixed64Type {
			return 0, fmt.Errorf("interval: float endpoint has wire type %d", typ)
		}
		x, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return 0, fmt.Errorf("interval: %w", protowire.ParseError(n))
		}
		v.SetFloat(math.Float64frombits(x))
		return n, nil
	case reflect.String:
		if typ != protowire.BytesType {
			return 0, fmt.Errorf("interval: string endpoint has wire type %d", typ)
		}
		s, n := protowire.ConsumeString(b)
		if n < 0 {
			return 0, fmt.Errorf("interval: %w", protowire.ParseError(n))
		}
		v.SetString(s)
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedEndpoint, v.Type())
	}
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int) {
	if typ != protowire.VarintType {
		return 0, -1
	}
	return protowire.ConsumeVarint(b)
}
