package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrDuplicateSlug      = errors.New("slug already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")

	// ErrBootstrapCredentials is returned at startup when no admin exists and
	// none can be created from configuration.
	ErrBootstrapCredentials = errors.New("no admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD are not set")
)

// Not-found sentinels. They are *NotFoundError values so the HTTP layer can
// map them by type while callers still compare with errors.Is.
var (
	ErrUserNotFound        error = NewNotFoundError("User")
	ErrLoanNotFound        error = NewNotFoundError("Loan")
	ErrLoanUnavailable     error = &NotFoundError{Resource: "Loan", Message: "Loan is not available"}
	ErrApplicationNotFound error = NewNotFoundError("Application")
	ErrQuoteNotFound       error = NewNotFoundError("Quote")
	ErrContactNotFound     error = NewNotFoundError("Contact")
)

// ValidationError reports malformed input. Details lists per-field problems
// when the request was rejected by struct validation.
type ValidationError struct {
	Message string
	Details []string
}

func NewValidationError(msg string, details ...string) *ValidationError {
	return &ValidationError{Message: msg, Details: details}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Message string
	Err     error
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return e.Err }

// NewConflictError builds a ConflictError wrapping the store-level cause.
func NewConflictError(msg string, cause error) *ConflictError {
	return &ConflictError{Message: msg, Err: cause}
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Resource + " not found"
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// AuthErrorKind classifies authentication failures.
type AuthErrorKind string

const (
	AuthMissingToken       AuthErrorKind = "missing_token"
	AuthInvalidToken       AuthErrorKind = "invalid_token"
	AuthIdentityNotFound   AuthErrorKind = "identity_not_found"
	AuthInvalidCredentials AuthErrorKind = "invalid_credentials"
)

// TokenFailure is the reason a token failed verification.
type TokenFailure string

const (
	TokenMalformed         TokenFailure = "malformed"
	TokenSignatureMismatch TokenFailure = "signature_mismatch"
	TokenExpired           TokenFailure = "expired"
)

// TokenError is returned by token verification.
type TokenError struct {
	Reason TokenFailure
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Reason, e.Err)
	}
	return "token " + string(e.Reason)
}

func (e *TokenError) Unwrap() error { return e.Err }

// AuthError is an authentication failure surfaced to the caller as 401.
type AuthError struct {
	Kind   AuthErrorKind
	Reason TokenFailure
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case AuthMissingToken:
		return "Not authorized, no token"
	case AuthInvalidToken:
		if e.Reason == TokenExpired {
			return "Not authorized, token expired"
		}
		return "Not authorized, token failed"
	case AuthIdentityNotFound:
		return "Not authorized, user not found"
	default:
		return "Invalid credentials"
	}
}

// Is makes every invalid_credentials AuthError match ErrInvalidCredentials.
func (e *AuthError) Is(target error) bool {
	return target == ErrInvalidCredentials && e.Kind == AuthInvalidCredentials
}

// AuthzError is an authorization failure surfaced as 403.
type AuthzError struct {
	Required []Role
	Actual   Role
}

func (e *AuthzError) Error() string {
	names := make([]string, len(e.Required))
	for i, r := range e.Required {
		names[i] = string(r)
	}
	return fmt.Sprintf("User role %s is not authorized to access this route (requires %s)",
		e.Actual, strings.Join(names, " or "))
}

// HashingError wraps an unrecoverable failure of the password hashing library.
type HashingError struct {
	Err error
}

func (e *HashingError) Error() string { return "hash password: " + e.Err.Error() }

func (e *HashingError) Unwrap() error { return e.Err }
