// Package apperr defines the error taxonomy surfaced by the membership
// engine and the chat subsystem. Handlers map kinds to HTTP statuses (or to
// connection error events) in one place; business code never recovers from
// these locally.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindServer is the fallback for storage or transaction failures.
	KindServer Kind = iota
	// KindValidation covers malformed or out-of-bounds input.
	KindValidation
	// KindUnauthorized is a missing or invalid credential.
	KindUnauthorized
	// KindForbidden is an authenticated caller lacking entitlement.
	KindForbidden
	// KindNotFound is an absent or malformed entity reference.
	KindNotFound
	// KindConflict is a state precondition violated at write time (full
	// group, already a member, application no longer pending). It is
	// correct-and-final, never retried.
	KindConflict
	// KindDuplicate is the application uniqueness violation.
	KindDuplicate
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries a kind, a user-facing message, and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a KindValidation error with optional field details.
func Validation(msg string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Unauthorized builds a KindUnauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Forbidden builds a KindForbidden error.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict builds a KindConflict error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Duplicate builds a KindDuplicate error.
func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg}
}

// Server wraps an unexpected failure. The cause is logged, never sent to
// clients.
func Server(msg string, err error) *Error {
	return &Error{Kind: KindServer, Message: msg, Err: err}
}

// KindOf extracts the kind from err, defaulting to KindServer for anything
// outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}

// MessageOf returns the user-facing message, or a generic one for errors
// outside the taxonomy.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error occurred."
}

// FieldsOf returns field details when present.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
