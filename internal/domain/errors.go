package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation ErrKind = "validation" // 400
	KindAuth       ErrKind = "auth"       // 401
	KindForbidden  ErrKind = "forbidden"  // 403
	KindNotFound   ErrKind = "not_found"  // 404
	KindDelivery   ErrKind = "delivery"   // 500
	KindUpstream   ErrKind = "upstream"   // 502
	KindInternal   ErrKind = "internal"   // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: the exact client-facing string for this failure
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Registration / verification
// ----------------------

func ErrAlreadyRegistered() *Error {
	return New(KindValidation, "already_registered", "Email already registered")
}

// ErrInvalidToken covers unknown, already-consumed and malformed tokens
// alike; callers never learn which one it was.
func ErrInvalidToken() *Error {
	return New(KindValidation, "invalid_token", "Invalid or expired token")
}

// ----------------------
// Login
// ----------------------

// IMPORTANT: used for both unknown-email and wrong-password failures to
// avoid user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "Invalid email or password")
}

func ErrNotVerified() *Error {
	return New(KindForbidden, "not_verified", "Please verify your email before logging in")
}

func ErrSessionInvalid() *Error {
	return New(KindAuth, "session_invalid", "Not signed in")
}

// ----------------------
// Password reset
// ----------------------

func ErrEmailNotRegistered() *Error {
	return New(KindNotFound, "email_not_registered", "Email not registered")
}

// ----------------------
// Input handling
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingURL() *Error {
	return New(KindValidation, "missing_url", "Please enter a URL to check")
}

// ----------------------
// Collaborators / internal (5xx)
// ----------------------

func ErrDeliveryFailed(cause error) *Error {
	return Wrap(KindDelivery, "delivery_failed", "Failed to send email", cause)
}

func ErrClassifierUnavailable(cause error) *Error {
	return Wrap(KindUpstream, "classifier_unavailable", "Classification service unavailable", cause)
}

// ErrAccountMissing reports a token pointing at an email the account store
// does not know. That breaks the token/account invariant, so it is a caller
// bug, not a client-visible condition.
func ErrAccountMissing(email string) *Error {
	return Wrap(KindInternal, "account_missing", "internal error", fmt.Errorf("no account for %q", email))
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
