// Package zerr defines the error kinds Zen surfaces at expression
// construction time and at solve time. It mirrors the compiler's
// internal/errors package: a small, typed wrapper around fmt.Errorf
// rather than ad-hoc string errors, so callers can distinguish kinds
// with errors.Is / errors.As.
package zerr

import (
	"errors"
	"fmt"
)

// Kind identifies one of the error kinds from the specification's error
// handling design. NoModel is deliberately absent: an unsatisfiable
// query is not an error, it is a (nil, false) result.
type Kind int

const (
	// InvalidConstruction signals a factory called with mismatched
	// operand types, a missing or illegal field name, or a malformed
	// integer width.
	InvalidConstruction Kind = iota
	// UnsupportedByBackend signals an operation the chosen solver
	// backend cannot perform (e.g. Multiply under the BDD backend).
	UnsupportedByBackend
	// TypeMismatch signals a symbolic-value merge across incompatible
	// variants. This indicates an internal bug, never a user error.
	TypeMismatch
	// Unreachable signals an Argument node reached during symbolic
	// evaluation; user-facing expressions must be closed over
	// Arbitrary nodes only.
	Unreachable
)

func (k Kind) String() string {
	switch k {
	case InvalidConstruction:
		return "InvalidConstruction"
	case UnsupportedByBackend:
		return "UnsupportedByBackend"
	case TypeMismatch:
		return "TypeMismatch"
	case Unreachable:
		return "Unreachable"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type for all Zen error kinds. It carries
// a short "trail" — the factory or operation name plus the offending
// operand description — in place of the source position a compiler
// error would carry, since expressions have no source text.
type Error struct {
	Kind  Kind
	Trail string
	Err   error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Trail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Trail)
}

func (e *Error) Unwrap() error { return e.Err }

// Is supports errors.Is(err, zerr.InvalidConstruction) style checks by
// comparing kinds rather than requiring identical *Error pointers.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New builds an *Error of the given kind with a formatted trail.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Trail: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind, wrapping an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Trail: fmt.Sprintf(format, args...), Err: cause}
}

// sentinels usable with errors.Is(err, zerr.ErrInvalidConstruction).
var (
	ErrInvalidConstruction = &Error{Kind: InvalidConstruction}
	ErrUnsupportedByBackend = &Error{Kind: UnsupportedByBackend}
	ErrTypeMismatch         = &Error{Kind: TypeMismatch}
	ErrUnreachable          = &Error{Kind: Unreachable}
)
