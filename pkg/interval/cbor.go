package interval

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encMode writes times as RFC 3339 strings with nanoseconds so endpoints
// survive a round trip without the precision loss of the default unix mode.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("interval: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("interval: CBOR decoder initialization failed: " + err.Error())
	}
}

const cborNull = 0xf6

type cborRange struct {
	LowerEndpoint  cbor.RawMessage `cbor:"1,keyasint,omitempty"`
	LowerBoundType string          `cbor:"2,keyasint,omitempty"`
	UpperEndpoint  cbor.RawMessage `cbor:"3,keyasint,omitempty"`
	UpperBoundType string          `cbor:"4,keyasint,omitempty"`
}

// MarshalCBOR encodes r as a CBOR map keyed 1-4 (lower endpoint, lower bound
// type, upper endpoint, upper bound type).
func (r Range[T]) MarshalCBOR() ([]byte, error) {
	var w cborRange
	var err error

	if r.lower.nilValue() || r.upper.nilValue() {
		return nil, ErrNilEndpoint
	}

	if r.lower.present {
		if w.LowerEndpoint, err = encMode.Marshal(r.lower.value); err != nil {
			return nil, fmt.Errorf("interval: lower endpoint: %w", err)
		}
		w.LowerBoundType = r.lower.bound.String()
	}
	if r.upper.present {
		if w.UpperEndpoint, err = encMode.Marshal(r.upper.value); err != nil {
			return nil, fmt.Errorf("interval: upper endpoint: %w", err)
		}
		w.UpperBoundType = r.upper.bound.String()
	}

	return encMode.Marshal(w)
}

// UnmarshalCBOR decodes a range written by MarshalCBOR.
func (r *Range[T]) UnmarshalCBOR(data []byte) error {
	var w cborRange
	if err := decMode.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("interval: %w", err)
	}

	var decoded Range[T]
	var err error
	if decoded.lower, err = decodeCBOREnd[T](w.LowerEndpoint, w.LowerBoundType); err != nil {
		return fmt.Errorf("interval: lower endpoint: %w", err)
	}
	if decoded.upper, err = decodeCBOREnd[T](w.UpperEndpoint, w.UpperBoundType); err != nil {
		return fmt.Errorf("interval: upper endpoint: %w", err)
	}

	*r = decoded
	return nil
}

// MarshalCBOR encodes r; a convenience for callers outside a struct.
func MarshalCBOR[T any](r Range[T]) ([]byte, error) {
	return r.MarshalCBOR()
}

// UnmarshalCBOR decodes data into a Range[T].
func UnmarshalCBOR[T any](data []byte) (Range[T], error) {
	var r Range[T]
	err := r.UnmarshalCBOR(data)
	return r, err
}

func decodeCBOREnd[T any](raw cbor.RawMessage, boundType string) (endpoint[T], error) {
	var e endpoint[T]

	if len(raw) == 0 || (len(raw) == 1 && raw[0] == cborNull) {
		if boundType != "" {
			return e, errMissingEndpoint
		}
		return e, nil
	}

	e.bound = BoundClosed
	if boundType != "" {
		b, err := ParseBoundType(boundType)
		if err != nil {
			return e, err
		}
		e.bound = b
	}

	if err := decMode.Unmarshal(raw, &e.value); err != nil {
		return e, err
	}
	e.present = true
	return e, nil
}
