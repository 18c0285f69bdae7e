package classforge

import (
	"errors"
	"fmt"
)

// Standard sentinel errors shared across the application layers.
var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("classforge: resource not found")
)

// NotFoundError reports a missing resource, such as a stored diagram
// or a share token that was never issued.
type NotFoundError struct {
	resource string
	id       any // Optional: the identifier that was looked up
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("classforge: %s not found (id=%v)", e.resource, e.id)
	}
	return fmt.Sprintf("classforge: %s not found", e.resource)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Resource returns the resource kind.
func (e *NotFoundError) Resource() string {
	return e.resource
}

// ID returns the identifier that was looked up, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given resource kind.
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{resource: resource}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the identifier
// that was looked up.
func NewNotFoundErrorWithID(resource string, id any) *NotFoundError {
	return &NotFoundError{resource: resource, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}
