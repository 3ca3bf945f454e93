package handlers

import (
	"context"
	"net/http"

	"github.com/applytrack/backend/internal/auth"
	"github.com/applytrack/backend/internal/models"
	"github.com/applytrack/backend/internal/policy"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for user management business logic
type UserService interface {
	// List returns every user; admin only
	List(ctx context.Context, p policy.Principal) ([]models.UserResponse, error)
	// Get returns a user record; admin or self
	Get(ctx context.Context, p policy.Principal, id string) (*models.UserResponse, error)
	// Update mutates a user record; admin or self, role changes admin-only
	Update(ctx context.Context, p policy.Principal, id string, req *models.UpdateUserRequest) (*models.UserResponse, error)
	// Delete removes a user record and their applications; admin or self
	Delete(ctx context.Context, p policy.Principal, id string) error
}

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		userService: userService,
	}
}

// RegisterRoutes registers all user handler routes
// Note: This assumes the router is already scoped to /api and behind auth middleware
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /users
// @Summary List users
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserResponse
// @Failure 403 {object} apperror.ErrorResponse "Admin access required"
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	users, err := h.userService.List(r.Context(), principal)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// Get handles GET /users/{id}
// @Summary Get a user
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.userService.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// Update handles PATCH /users/{id}
// @Summary Update a user
// @Description Admin or self; only admin may change the role field
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param request body models.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.UserResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse "Email already registered"
// @Router /users/{id} [patch]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.UpdateUserRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Update(r.Context(), principal, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}
// @Summary Delete a user
// @Description Admin or self; the user's applications are removed as well
// @Tags users
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 204 "Deleted"
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.userService.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		h.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
