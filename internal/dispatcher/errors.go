package dispatcher

import (
	"fmt"

	"github.com/vk/habitatgo/internal/validator"
)

// Kind classifies a dispatch failure.
type Kind int

const (
	// KindServiceNotFound means no service with the requested id is bound.
	KindServiceNotFound Kind = iota
	// KindInvalidArgs wraps a validation error: the caller's arguments did
	// not satisfy the service's field constraints.
	KindInvalidArgs
	// KindHandlerFailed wraps an error raised by the bound handler itself.
	// The cause is opaque to the engine and never reinterpreted.
	KindHandlerFailed
)

// Error is the uniform failure value returned by Call. Nothing the dispatcher
// does is fatal to the process; every failure is an Error returned to the
// caller.
type Error struct {
	Service    string
	Kind       Kind
	Validation *validator.Error
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindServiceNotFound:
		return fmt.Sprintf("service %q: not found", e.Service)
	case KindInvalidArgs:
		return fmt.Sprintf("service %q: invalid arguments: %s", e.Service, e.Validation)
	case KindHandlerFailed:
		return fmt.Sprintf("service %q: handler failed: %s", e.Service, e.Cause)
	default:
		return fmt.Sprintf("service %q: dispatch failed", e.Service)
	}
}

// Unwrap exposes the underlying validation error or handler cause to
// errors.Is and errors.As.
func (e *Error) Unwrap() error {
	if e.Validation != nil {
		return e.Validation
	}
	return e.Cause
}
