// Package handlers exposes the HTTP surface of the application
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/applytrack/backend/internal/apperror"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response with an explicit status
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// HandleError maps a service error to its HTTP status through the error
// taxonomy and sends the error payload. Unclassified errors become 500.
func (h *BaseHandler) HandleError(w http.ResponseWriter, err error) {
	if appErr, ok := apperror.FromError(err); ok {
		if appErr.StatusCode() == http.StatusInternalServerError {
			h.Logger.Error("request failed", zap.Error(err))
		}
		h.RespondJSON(w, appErr.StatusCode(), appErr.ToResponse())
		return
	}

	h.Logger.Error("unclassified error", zap.Error(err))
	h.RespondError(w, http.StatusInternalServerError, err.Error())
}

// DecodeJSON parses the request body into dst, reporting malformed payloads as 400
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
