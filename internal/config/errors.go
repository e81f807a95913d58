package config

import "fmt"

// SchemaReason classifies why a service definition was rejected at load time.
type SchemaReason string

const (
	InvalidDefault     SchemaReason = "invalid_default"
	InvalidRange       SchemaReason = "invalid_range"
	DuplicateFieldName SchemaReason = "duplicate_field_name"
	DuplicateServiceID SchemaReason = "duplicate_service_id"
)

// SchemaError reports a defect in a service definition itself, as opposed to
// a defect in the arguments of a call against it. A SchemaError is fatal to
// loading the one definition it names; other definitions still load.
type SchemaError struct {
	Service string
	Field   string
	Reason  SchemaReason
	Detail  string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("service %q, field %q: %s: %s", e.Service, e.Field, e.Reason, e.Detail)
	}
	return fmt.Sprintf("service %q: %s: %s", e.Service, e.Reason, e.Detail)
}

// schemaErrf builds a SchemaError with a formatted detail message.
func schemaErrf(service, field string, reason SchemaReason, format string, args ...any) *SchemaError {
	return &SchemaError{
		Service: service,
		Field:   field,
		Reason:  reason,
		Detail:  fmt.Sprintf(format, args...),
	}
}
