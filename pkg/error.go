package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Error kinds shared by every pargv package. Each concrete error wraps one of
// these, so callers can classify a failure with errors.Is.
var (
	// ErrGrammar is returned for a malformed usage token or usage string.
	// It is raised while registering commands, never while parsing.
	ErrGrammar = NewError("grammar error")

	// ErrTypeMismatch is returned when a value fails the validator of its
	// declared or detected type.
	ErrTypeMismatch = NewError("type mismatch")

	// ErrValidation is returned when parsed arguments violate a command's
	// constraints: missing required keys, unmet dependencies, count limits,
	// forbidden anonymous arguments or invalid negation.
	ErrValidation = NewError("validation error")

	// ErrUndefinedValue is returned when a builder call receives an empty
	// key or a nil value where one is required.
	ErrUndefinedValue = NewError("undefined value")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
// A sentinel is an Error with a message and no wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || t.msg == "" {
		return false
	}

	return t.msg == e.msg
}

// Message returns the error's own message without its cause.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped error's message, or an empty string.
func (e *Error) Cause() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// Wrapf creates a new Error wrapping a formatted message.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Attrs returns a copy of the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}
