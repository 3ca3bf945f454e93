// Package apperror defines the application error taxonomy and its mapping to HTTP status codes
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error
type ErrorType int

const (
	// InternalError represents an unexpected runtime failure
	InternalError ErrorType = iota
	// DatabaseError represents a storage failure
	DatabaseError
	// ValidationError represents missing or malformed input
	ValidationError
	// AuthError represents an authentication failure (missing/invalid token, bad credentials)
	AuthError
	// UnauthorizedError represents an authorization failure (authenticated but policy-denied)
	UnauthorizedError
	// NotFoundError represents a resource id that does not resolve
	NotFoundError
	// ConflictError represents a unique-constraint violation such as a duplicate email
	ConflictError
)

// AppError carries an error type, a user-facing message and an optional underlying error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so errors.Is/As can inspect the chain
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError:
		return http.StatusBadRequest
	case AuthError:
		return http.StatusUnauthorized
	case UnauthorizedError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new AppError
func New(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewInternalError creates an InternalError
func NewInternalError(message string, underlying error) *AppError {
	return New(InternalError, message, underlying)
}

// NewDatabaseError creates a DatabaseError
func NewDatabaseError(message string, underlying error) *AppError {
	return New(DatabaseError, message, underlying)
}

// NewValidationError creates a ValidationError
func NewValidationError(message string) *AppError {
	return New(ValidationError, message, nil)
}

// NewAuthError creates an AuthError
func NewAuthError(message string) *AppError {
	return New(AuthError, message, nil)
}

// NewUnauthorizedError creates an UnauthorizedError
func NewUnauthorizedError(message string) *AppError {
	return New(UnauthorizedError, message, nil)
}

// NewNotFoundError creates a NotFoundError
func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message, nil)
}

// NewConflictError creates a ConflictError
func NewConflictError(message string) *AppError {
	return New(ConflictError, message, nil)
}

// ErrorResponse is the JSON error payload returned to API clients
type ErrorResponse struct {
	Error string `json:"error" example:"a description of the error"`
}

// ToResponse converts an AppError to its client payload
// Only the user-facing message is exposed, never the underlying error
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// FromError extracts an *AppError from an error chain
func FromError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsUnauthorized checks if an error is an UnauthorizedError
func IsUnauthorized(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == UnauthorizedError
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
