package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks bad field values or request shapes.
	ErrValidation = errors.New("validation failed")
	// ErrAuthentication marks bad credentials.
	ErrAuthentication = errors.New("authentication failed")
	// ErrAuthorization marks an actor lacking permission for an operation.
	ErrAuthorization = errors.New("not authorized")
	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("already exists")
)

// DomainError carries a human readable message and the kind of failure.
type DomainError struct {
	Kind    error
	Field   string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

// Validation creates a validation error for the given field.
func Validation(field, message string) *DomainError {
	return &DomainError{Kind: ErrValidation, Field: field, Message: message}
}

// Authentication creates an authentication error.
func Authentication(message string) *DomainError {
	return &DomainError{Kind: ErrAuthentication, Message: message}
}

// Forbidden creates an authorization error.
func Forbidden(message string) *DomainError {
	return &DomainError{Kind: ErrAuthorization, Message: message}
}

// NotFound creates a not-found error for the named resource.
func NotFound(resource string) *DomainError {
	return &DomainError{Kind: ErrNotFound, Message: resource + " not found"}
}

// Conflict creates a conflict error.
func Conflict(message string) *DomainError {
	return &DomainError{Kind: ErrConflict, Message: message}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return errors.As(err, target) }

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unclassified errors
// become a generic 500 so storage details never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	msg := err.Error()
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, msg, "VALIDATION_ERROR")
	case errors.Is(err, ErrAuthentication):
		return NewHTTPError(http.StatusBadRequest, msg, "AUTHENTICATION_ERROR")
	case errors.Is(err, ErrAuthorization):
		return NewHTTPError(http.StatusUnauthorized, msg, "AUTHORIZATION_ERROR")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, msg, "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, msg, "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
