package apperr

import (
	"errors"
	"fmt"
)

// Error kinds shared by the store, session and controller layers so that
// every failure maps to exactly one HTTP status.
var (
	ErrAuth     = errors.New("authentication failed")
	ErrStore    = errors.New("store operation failed")
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("conflicting record")
	ErrInvalid  = errors.New("invalid input")
)

// Auth wraps a sign-in/up/out failure.
func Auth(msg string) error {
	return fmt.Errorf("%w: %s", ErrAuth, msg)
}

// Store wraps a query or mutation failure from the backing store.
func Store(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}

// NotFound reports a lookup that returned no row where one was expected.
func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// Conflict reports a uniqueness violation (e.g. duplicate email).
func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// Invalid reports a row or input that failed boundary validation.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, msg)
}
