package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected int
	}{
		{"validation maps to 400", ValidationError, http.StatusBadRequest},
		{"auth maps to 401", AuthError, http.StatusUnauthorized},
		{"unauthorized maps to 403", UnauthorizedError, http.StatusForbidden},
		{"not found maps to 404", NotFoundError, http.StatusNotFound},
		{"conflict maps to 409", ConflictError, http.StatusConflict},
		{"internal maps to 500", InternalError, http.StatusInternalServerError},
		{"database maps to 500", DatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.errType, "message", nil)
			assert.Equal(t, tt.expected, err.StatusCode())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "boom", NewValidationError("boom").Error())

	wrapped := NewDatabaseError("query failed", errors.New("connection reset"))
	assert.Equal(t, "query failed: connection reset", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("connection reset")
	err := NewDatabaseError("query failed", underlying)

	assert.ErrorIs(t, err, underlying)
}

func TestAppError_ToResponse(t *testing.T) {
	// The underlying error must never leak into the client payload
	err := NewDatabaseError("query failed", errors.New("dsn=user:secret@tcp(db)"))

	resp := err.ToResponse()
	assert.Equal(t, "query failed", resp.Error)
}

func TestFromError(t *testing.T) {
	appErr, ok := FromError(NewNotFoundError("job not found"))
	assert.True(t, ok)
	assert.Equal(t, NotFoundError, appErr.Type)

	// wrapped in a plain error chain
	wrapped := fmt.Errorf("listing jobs: %w", NewConflictError("duplicate"))
	appErr, ok = FromError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ConflictError, appErr.Type)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("x")))
	assert.False(t, IsNotFound(NewConflictError("x")))
	assert.False(t, IsNotFound(errors.New("x")))

	assert.True(t, IsUnauthorized(NewUnauthorizedError("x")))
	assert.False(t, IsUnauthorized(NewAuthError("x")))

	assert.True(t, IsValidation(NewValidationError("x")))
	assert.False(t, IsValidation(NewNotFoundError("x")))

	assert.True(t, IsConflict(NewConflictError("x")))
	assert.False(t, IsConflict(NewValidationError("x")))
}
