package validator

import "fmt"

// Reason classifies why a call's arguments were rejected.
type Reason string

const (
	MissingField  Reason = "missing_field"
	UnknownField  Reason = "unknown_field"
	InvalidType   Reason = "invalid_type"
	OutOfRange    Reason = "out_of_range"
	InvalidStep   Reason = "invalid_step"
	InvalidOption Reason = "invalid_option"
)

// Error reports the first defect found in a set of call arguments. It is
// always the caller's fault and always recoverable; the engine never treats
// it as fatal.
type Error struct {
	Field  string
	Reason Reason
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("field %q: %s: %s", e.Field, e.Reason, e.Detail)
}

// errf builds an Error with a formatted detail message.
func errf(field string, reason Reason, format string, args ...any) *Error {
	return &Error{Field: field, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
