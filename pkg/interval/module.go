package interval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// DefaultLayout is the time layout used when a Module is given none.
const DefaultLayout = time.RFC3339Nano

// Module configures JSON encoding of ranges. It only affects time.Time
// endpoints, which are written with the serialize layout and parsed with the
// deserialize layout; other endpoint types use encoding/json as is.
//
// The wire shape is
//
//	{"lowerEndpoint":1,"lowerBoundType":"CLOSED","upperEndpoint":5,"upperBoundType":"OPEN"}
//
// with both fields of an unbounded end omitted.
type Module struct {
	serializeLayout   string
	deserializeLayout string
	location          *time.Location
}

// Option configures a Module.
type Option func(*Module)

// WithSerializeLayout sets the time layout used when encoding endpoints.
func WithSerializeLayout(layout string) Option {
	return func(m *Module) {
		if layout != "" {
			m.serializeLayout = layout
		}
	}
}

// WithDeserializeLayout sets the time layout used when decoding endpoints.
func WithDeserializeLayout(layout string) Option {
	return func(m *Module) {
		if layout != "" {
			m.deserializeLayout = layout
		}
	}
}

// WithLocation sets the location for parsed times whose layout carries no
// zone. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(m *Module) {
		if loc != nil {
			m.location = loc
		}
	}
}

// NewModule returns a Module with DefaultLayout for both directions unless
// overridden.
func NewModule(opts ...Option) *Module {
	m := &Module{
		serializeLayout:   DefaultLayout,
		deserializeLayout: DefaultLayout,
		location:          time.UTC,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name identifies the module.
func (m *Module) Name() string { return "interval" }

func (m *Module) SerializeLayout() string   { return m.serializeLayout }
func (m *Module) DeserializeLayout() string { return m.deserializeLayout }

var registered atomic.Pointer[Module]

func init() {
	registered.Store(NewModule())
}

// Register installs m as the module used by Range's MarshalJSON and
// UnmarshalJSON. A nil m restores the defaults.
func Register(m *Module) {
	if m == nil {
		m = NewModule()
	}
	registered.Store(m)
}

// Registered returns the module installed by Register.
func Registered() *Module {
	return registered.Load()
}

type wireRange struct {
	LowerEndpoint  json.RawMessage `json:"lowerEndpoint,omitempty"`
	LowerBoundType string          `json:"lowerBoundType,omitempty"`
	UpperEndpoint  json.RawMessage `json:"upperEndpoint,omitempty"`
	UpperBoundType string          `json:"upperBoundType,omitempty"`
}

// Marshal encodes r with m.
func Marshal[T any](m *Module, r Range[T]) ([]byte, error) {
	var w wireRange
	var err error

	if r.lower.nilValue() || r.upper.nilValue() {
		return nil, ErrNilEndpoint
	}

	if r.lower.present {
		if w.LowerEndpoint, err = m.encodeEndpoint(r.lower.value); err != nil {
			return nil, fmt.Errorf("interval: lower endpoint: %w", err)
		}
		w.LowerBoundType = r.lower.bound.String()
	}
	if r.upper.present {
		if w.UpperEndpoint, err = m.encodeEndpoint(r.upper.value); err != nil {
			return nil, fmt.Errorf("interval: upper endpoint: %w", err)
		}
		w.UpperBoundType = r.upper.bound.String()
	}

	return json.Marshal(w)
}

// Unmarshal decodes a range encoded by Marshal. A missing bound type
// defaults to CLOSED; a bound type without an endpoint is an error. JSON
// null decodes to All.
func Unmarshal[T any](m *Module, data []byte) (Range[T], error) {
	var r Range[T]
	if isNull(data) {
		return r, nil
	}

	var w wireRange
	if err := json.Unmarshal(data, &w); err != nil {
		return r, fmt.Errorf("interval: %w", err)
	}

	var err error
	if r.lower, err = decodeEnd[T](m, w.LowerEndpoint, w.LowerBoundType); err != nil {
		return r, fmt.Errorf("interval: lower endpoint: %w", err)
	}
	if r.upper, err = decodeEnd[T](m, w.UpperEndpoint, w.UpperBoundType); err != nil {
		return r, fmt.Errorf("interval: upper endpoint: %w", err)
	}
	return r, nil
}

// MarshalJSON encodes r with the registered module.
func (r Range[T]) MarshalJSON() ([]byte, error) {
	return Marshal(Registered(), r)
}

// UnmarshalJSON decodes r with the registered module. JSON null leaves r
// unchanged.
func (r *Range[T]) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	decoded, err := Unmarshal[T](Registered(), data)
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

func (m *Module) encodeEndpoint(v any) (json.RawMessage, error) {
	if t, ok := v.(time.Time); ok {
		return json.Marshal(t.Format(m.serializeLayout))
	}
	return json.Marshal(v)
}

var errMissingEndpoint = errors.New("bound type given without endpoint")

func decodeEnd[T any](m *Module, raw json.RawMessage, boundType string) (endpoint[T], error) {
	var e endpoint[T]

	if len(raw) == 0 || isNull(raw) {
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

	if tp, ok := any(&e.value).(*time.Time); ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return e, err
		}
		t, err := time.ParseInLocation(m.deserializeLayout, s, m.location)
		if err != nil {
			return e, err
		}
		*tp = t
	} else if err := json.Unmarshal(raw, &e.value); err != nil {
		return e, err
	}

	e.present = true
	return e, nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
