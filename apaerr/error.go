/*Package apaerr defines the stable error kinds used across the core. The core
never calls os.Exit or log.Fatal; every construction or runtime error is
returned to the caller wrapped in an *Error so that callers can switch on Kind
with Is.*/
package apaerr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a core error. Kinds are stable across
// releases; the wrapped message text is not.
type Kind int

const (
	// OutOfBounds: a particle position is outside the declared region for
	// the operation (owned box for add_owned, halo shell for add_halo).
	OutOfBounds Kind = iota
	// NoApplicableConfiguration: the tuner's candidate set is empty.
	NoApplicableConfiguration
	// TraversalIncompatible: a traversal was requested for a container that
	// does not support it.
	TraversalIncompatible
	// InvalidCapability: the requested Newton-3 setting conflicts with the
	// functor's advertised capabilities.
	InvalidCapability
	// DimensionTooSmall: a traversal's partitioning (e.g. sliced) cannot
	// produce enough slabs for the thread count.
	DimensionTooSmall
)

func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "OutOfBounds"
	case NoApplicableConfiguration:
		return "NoApplicableConfiguration"
	case TraversalIncompatible:
		return "TraversalIncompatible"
	case InvalidCapability:
		return "InvalidCapability"
	case DimensionTooSmall:
		return "DimensionTooSmall"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every core package. Op names
// the operation that failed (e.g. "LinkedCells.AddOwned").
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no wrapped cause.
func New(kind Kind, op, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, a...)}
}

// Wrap attaches op and kind to an existing error without discarding it.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
