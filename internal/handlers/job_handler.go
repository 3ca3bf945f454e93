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

// JobService is the interface that wraps methods for job-catalog business logic
type JobService interface {
	// List returns job postings, optionally restricted to active ones
	List(ctx context.Context, activeOnly bool) ([]models.Job, error)
	// Get returns a single job posting
	Get(ctx context.Context, id string) (*models.Job, error)
	// Create adds a job posting; admin only
	Create(ctx context.Context, p policy.Principal, req *models.CreateJobRequest) (*models.Job, error)
	// Update mutates a job posting; admin only
	Update(ctx context.Context, p policy.Principal, id string, req *models.UpdateJobRequest) (*models.Job, error)
	// Delete removes a job posting; admin only
	Delete(ctx context.Context, p policy.Principal, id string) error
}

// JobHandler handles job-catalog HTTP requests
type JobHandler struct {
	BaseHandler
	jobService JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		BaseHandler: BaseHandler{Logger: logger},
		jobService:  jobService,
	}
}

// RegisterRoutes registers all job handler routes
// Note: This assumes the router is already scoped to /api and behind auth middleware
func (h *JobHandler) RegisterRoutes(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /jobs
// @Summary List job postings
// @Tags jobs
// @Produce json
// @Security ApiKeyAuth
// @Param active query bool false "Only return active postings"
// @Success 200 {array} models.Job
// @Failure 401 {object} apperror.ErrorResponse
// @Router /jobs [get]
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	jobs, err := h.jobService.List(r.Context(), activeOnly)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, jobs)
}

// Get handles GET /jobs/{id}
// @Summary Get a job posting
// @Tags jobs
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.Job
// @Failure 404 {object} apperror.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, job)
}

// Create handles POST /jobs
// @Summary Create a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateJobRequest true "Job posting"
// @Success 201 {object} models.Job
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse "Admin access required"
// @Router /jobs [post]
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateJobRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.jobService.Create(r.Context(), principal, &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, job)
}

// Update handles PATCH /jobs/{id}
// @Summary Update a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Job ID"
// @Param request body models.UpdateJobRequest true "Fields to update"
// @Success 200 {object} models.Job
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /jobs/{id} [patch]
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.UpdateJobRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.jobService.Update(r.Context(), principal, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, job)
}

// Delete handles DELETE /jobs/{id}
// @Summary Delete a job posting
// @Tags jobs
// @Security ApiKeyAuth
// @Param id path string true "Job ID"
// @Success 204 "Deleted"
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.jobService.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		h.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
