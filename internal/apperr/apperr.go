// Package apperr defines the domain error shapes the HTTP layer knows how
// to render. Services translate only the persistence failures they
// understand (unique violations, constraint violations) into these;
// everything else propagates unchanged and falls through to a generic 500.
package apperr

import (
	"errors"
	"net/http"
)

// Kind tags the error variant so callers switch on a typed constant
// instead of comparing error strings or numeric driver codes.
type Kind int

const (
	// KindValidation: field-level constraint violation or duplicate key.
	// The caller can recover by correcting input.
	KindValidation Kind = iota + 1
	// KindClient: the caller referenced a missing or inaccessible
	// resource, or lacks authorization.
	KindClient
	// KindNotFound: a lookup by identifier yielded nothing.
	KindNotFound
	// KindUnauthorized: the caller is not allowed to perform the action.
	KindUnauthorized
)

// Error is an application-level failure carrying a caller-facing
// explanation, message and HTTP-style status code. Validation errors
// additionally carry per-field detail.
type Error struct {
	Kind        Kind
	Explanation string
	Message     string
	StatusCode  int
	Fields      map[string][]string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation builds a field-level validation error (400).
func Validation(message string, fields map[string][]string) *Error {
	return &Error{
		Kind:        KindValidation,
		Explanation: "validation failed for the received data",
		Message:     message,
		StatusCode:  http.StatusBadRequest,
		Fields:      fields,
	}
}

// NotFound builds a missing-resource error (404).
func NotFound(explanation, message string) *Error {
	return &Error{
		Kind:        KindNotFound,
		Explanation: explanation,
		Message:     message,
		StatusCode:  http.StatusNotFound,
	}
}

// Unauthorized builds a permission error (401).
func Unauthorized(explanation, message string) *Error {
	return &Error{
		Kind:        KindUnauthorized,
		Explanation: explanation,
		Message:     message,
		StatusCode:  http.StatusUnauthorized,
	}
}

// Client builds a generic caller error with an explicit status code.
func Client(explanation, message string, statusCode int) *Error {
	return &Error{
		Kind:        KindClient,
		Explanation: explanation,
		Message:     message,
		StatusCode:  statusCode,
	}
}

// As unwraps err into *Error if it is (or wraps) a domain error.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
