package library

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every lookup failure for an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrPrecondition matches every rejected structural edit.
	ErrPrecondition = errors.New("precondition failed")
)

// NotFoundError reports an unknown id. It matches ErrNotFound.
type NotFoundError struct {
	Kind string // "track", "tracklist", "parent"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Preconditionf builds an error matching ErrPrecondition.
func Preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

// LoadError is returned when the library cannot be loaded at startup.
// It is not recoverable: the caller must not continue with a guessed state.
type LoadError struct {
	Op   string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
