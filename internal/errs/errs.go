// Package errs defines the fatal-error taxonomy shared by every core
// subsystem. Only SolverInterrupted is recoverable at the reach loop level;
// every other kind aborts the current compile/solve/command.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is one of the closed set of error categories a core operation can
// fail with.
type Kind string

const (
	KindUnresolvedSymbol         Kind = "UnresolvedSymbol"
	KindTypeError                Kind = "TypeError"
	KindAmbiguousConstantWidth   Kind = "AmbiguousConstantWidth"
	KindUnsupportedOpInFamily    Kind = "UnsupportedOpInFamily"
	KindEncodingRegistryConflict Kind = "EncodingRegistryConflict"
	KindModelNotLoaded           Kind = "ModelNotLoaded"
	KindNoTarget                 Kind = "NoTarget"
	KindSolverInterrupted        Kind = "SolverInterrupted"
	KindInternal                 Kind = "Internal"
)

// Error wraps a Kind with a human-readable message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap decorates err with a stack trace via pkg/errors, the same
// errors.Wrap(err, "...") pattern used at call boundaries throughout this
// module, and files it under kind.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, Msg: msg, Err: errors.Wrap(err, msg)}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether err (or a wrapped *Error in its chain) has the given
// Kind. Fatal is defined as "every kind but SolverInterrupted".
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind == kind {
				return true
			}
			err = e.Err
			continue
		}
		type unwrapper interface{ Unwrap() error }
		u, ok := err.(unwrapper)
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Fatal reports whether err, if non-nil, must abort the current command
// (every Kind except SolverInterrupted, which the reach loop turns into
// status Unknown and reports up).
func Fatal(err error) bool {
	return err != nil && !Is(err, KindSolverInterrupted)
}
