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

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Register creates a new user account with the default user role
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error)
	// Login verifies credentials and issues a signed token.
	// Unknown email and wrong password yield the same generic error.
	Login(ctx context.Context, req *models.LoginRequest) (string, *models.UserResponse, error)
	// Profile returns the authenticated principal's own user record
	Profile(ctx context.Context, p policy.Principal) (*models.UserResponse, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/profile", h.Profile)
		})
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Create a user account with the default user role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.UserResponse
// @Failure 400 {object} apperror.ErrorResponse "Missing or malformed fields"
// @Failure 409 {object} apperror.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate with email and password; returns a signed token and the user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	token, user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: user})
}

// Profile handles GET /auth/profile
// @Summary Get current user profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.authService.Profile(r.Context(), principal)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}
