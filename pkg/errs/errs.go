// Package errs defines the error categories shared by the voxtrack
// packages. Concrete errors carry the failing operation and unwrap to one
// of the sentinel categories, so callers classify them with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel error categories.
var (
	// ErrConfiguration marks invalid space bounds, unsupported dimensions
	// and contradictory adjacency resolution. Fatal for the extraction.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks a seed search that ran out of its step budget.
	ErrNotFound = errors.New("not found")
	// ErrPrecondition marks a contract violation by the caller, such as
	// reading the current node of a finished visitor.
	ErrPrecondition = errors.New("precondition violated")
)

// Error is a categorized error raised by operation Op.
type Error struct {
	Op   string
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

// Unwrap returns the category.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Configuration returns an ErrConfiguration error for op.
func Configuration(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns an ErrNotFound error for op.
func NotFound(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Precondition returns an ErrPrecondition error for op.
func Precondition(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrPrecondition, Msg: fmt.Sprintf(format, args...)}
}
