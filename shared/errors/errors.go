package errors

import (
	"errors"
	"fmt"
)

// Storage-level outcomes. Backends wrap these so callers can match with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Request-level kinds surfaced by the queue service.
var (
	ErrEmptyIdentifier     = errors.New("empty identifier")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrMissingFields       = errors.New("missing fields")
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Err        error // kind sentinel, optional
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func (e *ErrorWithStatusCode) Unwrap() error {
	return e.Err
}

// ValidationError is returned by storage when a record breaks a field constraint.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation error: %s", e.Message)
}

// Is reports whether err or anything it wraps is of type T.
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
