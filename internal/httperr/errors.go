package httperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindAuth
	KindInput
	KindNotFound
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindInput:
		return "input"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is the single error shape the core hands to the transport layer.
// Field is only set for input errors.
type Error struct {
	Kind    Kind
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Code
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind and code, so a sentinel still matches after a cause
// has been attached to a copy of it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Code == e.Code
}

func ErrAuth(code, message string) *Error {
	return &Error{Kind: KindAuth, Code: code, Message: message}
}

func ErrInput(field, message string) *Error {
	return &Error{Kind: KindInput, Code: "invalid_input", Field: field, Message: message}
}

func ErrNotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func ErrStore(op string, err error) *Error {
	return &Error{
		Kind:    KindStore,
		Code:    "store_failure",
		Message: "Internal server error",
		Err:     fmt.Errorf("%s: %w", op, err),
	}
}

// WithCause returns a copy of e carrying err as its cause.
func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func HasCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
