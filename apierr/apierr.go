// Package apierr defines the error taxonomy shared by every Eros client
// component. Callers branch on the category with errors.As (or the Is*
// helpers) instead of inspecting response messages.
package apierr

import (
	"errors"
	"fmt"
)

// ValidationError reports a client-side field check failure. It is raised
// before any network call and never reaches the API.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for the given field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidCodeError reports that a share code could not be resolved to a
// pregnant user, either because it is malformed or unknown.
type InvalidCodeError struct {
	Code string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid share code %q", e.Code)
}

// AuthorizationError reports a missing or expired credential. By the time a
// caller sees it the session store has already been cleared.
type AuthorizationError struct {
	Status int
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization failed (status %d)", e.Status)
}

// NetworkError wraps a transport-level failure: the request never produced a
// usable response. The operation is not retried automatically.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports an unexpected response status. Message carries the
// envelope's message field when the server provided one.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInvalidCode reports whether err is an InvalidCodeError.
func IsInvalidCode(err error) bool {
	var ce *InvalidCodeError
	return errors.As(err, &ce)
}

// IsAuthorization reports whether err is an AuthorizationError.
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsServer reports whether err is a ServerError.
func IsServer(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}
