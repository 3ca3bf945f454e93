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

// ApplicationService is the interface that wraps methods for application-ledger business logic
type ApplicationService interface {
	// List returns the principal's visible applications (all for admin, own otherwise)
	List(ctx context.Context, p policy.Principal) ([]models.ApplicationDetail, error)
	// ListByStatus returns visible applications restricted to the requested status
	ListByStatus(ctx context.Context, p policy.Principal, status string) ([]models.ApplicationDetail, error)
	// Get returns a single application; owner or admin
	Get(ctx context.Context, p policy.Principal, id string) (*models.ApplicationDetail, error)
	// Create submits an application owned by the caller
	Create(ctx context.Context, p policy.Principal, req *models.CreateApplicationRequest) (*models.JobApplication, error)
	// Update mutates an application; owner or admin
	Update(ctx context.Context, p policy.Principal, id string, req *models.UpdateApplicationRequest) (*models.JobApplication, error)
	// Delete removes an application; owner or admin
	Delete(ctx context.Context, p policy.Principal, id string) error
}

// ApplicationHandler handles application-ledger HTTP requests
type ApplicationHandler struct {
	BaseHandler
	appService ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appService ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler: BaseHandler{Logger: logger},
		appService:  appService,
	}
}

// RegisterRoutes registers all application handler routes
// Note: This assumes the router is already scoped to /api and behind auth middleware
func (h *ApplicationHandler) RegisterRoutes(r chi.Router) {
	r.Route("/applications", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/status/{status}", h.ListByStatus)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// principal extracts the authenticated principal or responds 401
func (h *ApplicationHandler) principal(w http.ResponseWriter, r *http.Request) (policy.Principal, bool) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
	}
	return principal, ok
}

// List handles GET /applications
// @Summary List applications
// @Description Admin sees all applications, a user sees only their own
// @Tags applications
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.ApplicationDetail
// @Failure 401 {object} apperror.ErrorResponse
// @Router /applications [get]
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	apps, err := h.appService.List(r.Context(), principal)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, apps)
}

// ListByStatus handles GET /applications/status/{status}
// @Summary List applications by status
// @Tags applications
// @Produce json
// @Security ApiKeyAuth
// @Param status path string true "Application status" Enums(Applied, Interviewing, Offered, Rejected)
// @Success 200 {array} models.ApplicationDetail
// @Failure 400 {object} apperror.ErrorResponse "Unknown status"
// @Router /applications/status/{status} [get]
func (h *ApplicationHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	apps, err := h.appService.ListByStatus(r.Context(), principal, chi.URLParam(r, "status"))
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, apps)
}

// Get handles GET /applications/{id}
// @Summary Get an application
// @Tags applications
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Application ID"
// @Success 200 {object} models.ApplicationDetail
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	app, err := h.appService.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, app)
}

// Create handles POST /applications
// @Summary Submit an application
// @Description The application is always owned by the caller; any supplied userId is ignored
// @Tags applications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateApplicationRequest true "Application"
// @Success 201 {object} models.JobApplication
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Referenced job does not exist"
// @Router /applications [post]
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req models.CreateApplicationRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.appService.Create(r.Context(), principal, &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, app)
}

// Update handles PATCH /applications/{id}
// @Summary Update an application
// @Tags applications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Application ID"
// @Param request body models.UpdateApplicationRequest true "Fields to update"
// @Success 200 {object} models.JobApplication
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /applications/{id} [patch]
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req models.UpdateApplicationRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.appService.Update(r.Context(), principal, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, app)
}

// Delete handles DELETE /applications/{id}
// @Summary Delete an application
// @Tags applications
// @Security ApiKeyAuth
// @Param id path string true "Application ID"
// @Success 204 "Deleted"
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.appService.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		h.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
