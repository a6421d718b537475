package errors

import (
	"errors"

	"github.com/iamNilotpal/kit/pkg/strfmt"
)

// CodedError is a failure carrying an already resolved message, an optional
// machine readable code and an optional cause. Messages are built with
// package strfmt so the error itself holds no template state.
type CodedError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Newf builds a CodedError whose message fills "{}" placeholders in template
// with args, in order.
func Newf(code, template string, args ...any) *CodedError {
	return &CodedError{Code: code, Message: strfmt.Format(template, args...)}
}

// Named builds a CodedError whose message fills "{key}" placeholders from values.
func Named(code, template string, values map[string]any) *CodedError {
	return &CodedError{Code: code, Message: strfmt.FormatNamed(template, values)}
}

// Wrapf is Newf with an underlying cause.
func Wrapf(err error, code, template string, args ...any) *CodedError {
	ce := Newf(code, template, args...)
	ce.Err = err
	return ce
}

func (e *CodedError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// WithCause returns a copy of e wrapping err.
func (e *CodedError) WithCause(err error) *CodedError {
	cp := *e
	cp.Err = err
	return &cp
}

// CodeOf returns the code of the outermost CodedError in err's chain that
// has one, or "" if none does.
func CodeOf(err error) string {
	for err != nil {
		var ce *CodedError
		if !errors.As(err, &ce) {
			return ""
		}
		if ce.Code != "" {
			return ce.Code
		}
		err = ce.Err
	}
	return ""
}

// IsCode reports whether any CodedError in err's chain carries code.
func IsCode(err error, code string) bool {
	for err != nil {
		var ce *CodedError
		if !errors.As(err, &ce) {
			return false
		}
		if ce.Code == code {
			return true
		}
		err = ce.Err
	}
	return false
}
