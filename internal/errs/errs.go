// Package errs defines the failure kinds shared by every pipeline stage.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrProbe is a failed or ambiguous pkg-config lookup. It is never fatal.
	ErrProbe = errors.New("probe failed")
	// ErrToolLaunch means an external tool could not be started.
	ErrToolLaunch = errors.New("tool launch failed")
	// ErrToolExit means an external tool ran and exited non-zero.
	ErrToolExit = errors.New("tool exited with error")
	// ErrMalformedInput is an input that must not be silently defaulted.
	ErrMalformedInput = errors.New("malformed input")
	// ErrFilesystem covers rename, remove, extract and missing-artifact failures.
	ErrFilesystem = errors.New("filesystem error")
	// ErrIntegrity is a downloaded archive whose digest does not match.
	ErrIntegrity = errors.New("integrity check failed")
)

// Error attaches a failure kind and the operation that produced it to an
// underlying cause.
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	s := e.Kind.Error()
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New returns an *Error of the given kind.
func New(kind error, op string, cause error) error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// Newf returns an *Error of the given kind with a formatted message.
func Newf(kind error, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// FS wraps a filesystem failure.
func FS(op string, cause error) error {
	return New(ErrFilesystem, op, cause)
}

// IsFatal reports whether err must abort the pipeline. Only probe failures
// are recoverable.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrProbe)
}
