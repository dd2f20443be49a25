package domain

import "fmt"

// NotFoundError reports a missing resource by the field it was looked up
// with.
type NotFoundError struct {
	Resource string
	Field    string
	Value    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

func NewNotFound(resource, field string, value any) *NotFoundError {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// ConflictError reports a unique-field collision.
type ConflictError struct {
	Resource string
	Field    string
	Value    any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists with %s: %v", e.Resource, e.Field, e.Value)
}

func NewConflict(resource, field string, value any) *ConflictError {
	return &ConflictError{Resource: resource, Field: field, Value: value}
}

// ValidationError reports malformed input. Fields maps field name to a
// human-readable message; it may be empty when Message alone applies.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// UnavailableError reports a failed call to an external service.
type UnavailableError struct {
	Service string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s is unavailable: %v", e.Service, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func NewUnavailable(service string, err error) *UnavailableError {
	return &UnavailableError{Service: service, Err: err}
}
