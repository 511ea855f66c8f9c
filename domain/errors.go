package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is reported when a document does not exist or is owned by a
// different account. Callers cannot tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is reported when an account with the same email already exists.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is reported on a failed login comparison.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthErrorKind distinguishes why a session token was rejected.
type AuthErrorKind string

const (
	AuthMissing AuthErrorKind = "missing"
	AuthInvalid AuthErrorKind = "invalid"
	AuthExpired AuthErrorKind = "expired"
)

// AuthError is returned by token verification. All kinds produce the same
// external outcome (401); the kind exists for logging and tests.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s token: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("auth: %s token", e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError builds an AuthError of the given kind.
func NewAuthError(kind AuthErrorKind, err error) *AuthError {
	return &AuthError{Kind: kind, Err: err}
}

// ValidationErrorKind distinguishes rejected request payloads.
type ValidationErrorKind string

const (
	ValidationEmptyPatch    ValidationErrorKind = "empty_patch"
	ValidationMalformedID   ValidationErrorKind = "malformed_id"
	ValidationMalformedBody ValidationErrorKind = "malformed_body"
)

// ValidationError is reported before any store call is made.
type ValidationError struct {
	Kind    ValidationErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// NewValidationError builds a ValidationError with a caller-facing message.
func NewValidationError(kind ValidationErrorKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

// IsAuthError reports whether err is an AuthError, returning it when so.
func IsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
