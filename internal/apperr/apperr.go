// Package apperr holds the error taxonomy shared by the service, the HTTP
// layer and the client. Validation and precondition failures are raised
// before any store or network call is made.
package apperr

import "fmt"

// ValidationError reports a missing or malformed field on a draft.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func Validation(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// PreconditionError reports an operation attempted before its required
// selections were made (quick-create without student+class).
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

func Precondition(msg string) error { return &PreconditionError{Msg: msg} }

// NotFoundError reports an id that resolves to no row.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// AccessError reports a capability or ownership rejection.
type AccessError struct {
	Msg string
}

func (e *AccessError) Error() string { return e.Msg }

func Access(msg string) error { return &AccessError{Msg: msg} }

// TransportError wraps a network or server failure on the client side. The
// server message is surfaced verbatim when available, a generic fallback
// otherwise.
type TransportError struct {
	Status int
	Msg    string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

func (e *TransportError) Unwrap() error { return e.Err }
