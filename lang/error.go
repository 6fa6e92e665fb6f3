package lang

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/rinha/ast"
)

// Runtime error kinds, the short labels spec.md's diagnostics carry in
// their "message" field.
const (
	KindUnboundVariable      = "unbound variable"
	KindInvalidFunctionCall  = "invalid function call"
	KindInvalidArguments     = "invalid arguments"
	KindInvalidIfCondition   = "invalid if condition"
	KindInvalidComparison    = "invalid comparison"
	KindInvalidNumericOp     = "invalid numeric operation"
	KindInvalidBinaryOp      = "invalid binary operation"
	KindDivisionByZero       = "division by zero"
	KindInvalidExpression    = "invalid expression"
)

// RuntimeError is the diagnostic shape a failed evaluation produces: a
// short message (one of the Kind constants above), a human-readable detail,
// and the source location the failure occurred at.
type RuntimeError struct {
	Message  string
	Detail   string
	Location ast.Location
	cause    error
}

// NewRuntimeError builds a RuntimeError at loc with the given kind and
// detail text.
func NewRuntimeError(kind, detail string, loc ast.Location) *RuntimeError {
	return &RuntimeError{Message: kind, Detail: detail, Location: loc}
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	b.WriteString(" (")
	b.WriteString(e.Location.String())
	b.WriteByte(')')

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RuntimeError) Unwrap() error { return e.cause }

// Wrap attaches an underlying cause, returning a new RuntimeError so the
// receiver stays immutable.
func (e *RuntimeError) Wrap(err error) *RuntimeError {
	return &RuntimeError{
		Message:  e.Message,
		Detail:   e.Detail,
		Location: e.Location,
		cause:    err,
	}
}

// LogValue implements slog.LogValuer for structured logging of a runtime
// failure.
func (e *RuntimeError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("message", e.Message),
		slog.String("detail", e.Detail),
		slog.String("location", e.Location.String()),
	}

	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}

	return slog.GroupValue(attrs...)
}

// Error represents a host-level (non-language) failure with optional
// structured logging attributes, mirroring the reference project's
// lang.Error: build a sentinel with NewError, augment at the call site
// with With, and chain causes with Wrap.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// Predefined host-level errors, distinct from the language-level
// RuntimeError kinds above: these describe failures in decoding or
// preparing a program, not in evaluating one.
var (
	ErrReadInput    = NewError("failed to read input")
	ErrDecodeAST    = NewError("failed to decode program")
	ErrEmptyProgram = NewError("program has no expression")
)

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error, reusing ee if err is
// already one.
func WrapError(err error) *Error {
	var ee *Error
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

// With adds attributes to the error for structured logging. This creates a
// new Error instance to maintain immutability.
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
