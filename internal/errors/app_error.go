package errors

import (
	"errors"
	"net/http"
)

// Kind is the error taxonomy exposed to API clients
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindUnavailable
)

// Status returns the HTTP status for a kind. Conflicts are reported as 400.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindAuthentication:
		return "AuthenticationError"
	case KindAuthorization:
		return "AuthorizationError"
	case KindNotFound:
		return "NotFoundError"
	case KindConflict:
		return "ConflictError"
	case KindUnavailable:
		return "UnavailableError"
	default:
		return "InternalError"
	}
}

// AppError is an error that knows how it should be presented to a client.
// Sentinel AppErrors are compared by identity with errors.Is.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Details []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func Validation(message string, details ...string) *AppError {
	return &AppError{Kind: KindValidation, Code: ValidationInvalidInput, Message: message, Details: details}
}

func Authentication(code, message string) *AppError {
	return New(KindAuthentication, code, message)
}

func Authorization(code, message string) *AppError {
	return New(KindAuthorization, code, message)
}

func NotFound(code, message string) *AppError {
	return New(KindNotFound, code, message)
}

func Conflict(code, message string) *AppError {
	return New(KindConflict, code, message)
}

// Internal wraps an unexpected failure. message is what the client sees.
func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: InternalServerError, Message: message, Err: err}
}

// As extracts an AppError from err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is is errors.Is, re-exported so callers importing this package as
// "errors" do not need the standard library alias.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
