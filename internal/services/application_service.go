package services

import (
	"context"

	"github.com/applytrack/backend/internal/apperror"
	"github.com/applytrack/backend/internal/models"
	"github.com/applytrack/backend/internal/policy"
	"go.uber.org/zap"
)

// ApplicationRepository is the interface that wraps methods for JobApplication table data access
type ApplicationRepository interface {
	// Create inserts a new application and assigns its server-side id
	Create(ctx context.Context, app *models.JobApplication) error
	// GetByID retrieves a bare application by id; a missing record yields a not-found error
	GetByID(ctx context.Context, id string) (*models.JobApplication, error)
	// GetDetailByID retrieves an application with its job and applicant embedded
	GetDetailByID(ctx context.Context, id string) (*models.ApplicationDetail, error)
	// List retrieves applications; an empty ownerID returns all records
	List(ctx context.Context, ownerID string) ([]models.ApplicationDetail, error)
	// ListByStatus retrieves applications with the given status, scoped like List
	ListByStatus(ctx context.Context, status models.ApplicationStatus, ownerID string) ([]models.ApplicationDetail, error)
	// Update writes the application's mutable fields
	Update(ctx context.Context, app *models.JobApplication) error
	// Delete removes an application
	Delete(ctx context.Context, id string) error
}

// ApplicationJobRepository is the subset of job data access the application service needs
type ApplicationJobRepository interface {
	// GetByID retrieves a job by id; a missing job yields a not-found error
	GetByID(ctx context.Context, id string) (*models.Job, error)
}

// applicationService implements the application ledger with ownership-scoped access
type applicationService struct {
	appRepo ApplicationRepository
	jobRepo ApplicationJobRepository
	logger  *zap.Logger
}

// NewApplicationService creates a new application service
func NewApplicationService(appRepo ApplicationRepository, jobRepo ApplicationJobRepository, logger *zap.Logger) *applicationService {
	return &applicationService{
		appRepo: appRepo,
		jobRepo: jobRepo,
		logger:  logger,
	}
}

// List returns applications visible to the principal: all records for admin,
// only owned records otherwise
func (s *applicationService) List(ctx context.Context, p policy.Principal) ([]models.ApplicationDetail, error) {
	return s.appRepo.List(ctx, policy.ApplicationScope(p))
}

// ListByStatus returns the principal's visible applications restricted to the
// requested status. An unknown status is rejected before any filtering.
func (s *applicationService) ListByStatus(ctx context.Context, p policy.Principal, status string) ([]models.ApplicationDetail, error) {
	appStatus := models.ApplicationStatus(status)
	if !appStatus.Valid() {
		return nil, apperror.NewValidationError("invalid application status")
	}

	return s.appRepo.ListByStatus(ctx, appStatus, policy.ApplicationScope(p))
}

// Get returns a single application with its job and applicant embedded.
// A missing record is reported as not-found before any ownership decision;
// an existing record the principal does not own is denied.
func (s *applicationService) Get(ctx context.Context, p policy.Principal, id string) (*models.ApplicationDetail, error) {
	detail, err := s.appRepo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanViewApplication(p, detail.UserID) {
		return nil, apperror.NewUnauthorizedError("access denied")
	}

	return detail, nil
}

// Create submits an application for the authenticated principal.
// The owner is always the caller; any client-supplied userId is ignored.
// The referenced job must exist.
func (s *applicationService) Create(ctx context.Context, p policy.Principal, req *models.CreateApplicationRequest) (*models.JobApplication, error) {
	if req.JobID == "" {
		return nil, apperror.NewValidationError("jobId is required")
	}
	if req.DateApplied.IsZero() {
		return nil, apperror.NewValidationError("dateApplied is required")
	}

	status := req.Status
	if status == "" {
		status = models.StatusApplied
	}
	if !status.Valid() {
		return nil, apperror.NewValidationError("invalid application status")
	}

	if _, err := s.jobRepo.GetByID(ctx, req.JobID); err != nil {
		return nil, err
	}

	app := &models.JobApplication{
		Status:      status,
		DateApplied: req.DateApplied,
		Notes:       req.Notes,
		UserID:      p.ID,
		JobID:       req.JobID,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("user_id", p.ID),
		zap.String("job_id", app.JobID),
	)

	return app, nil
}

// Update mutates an application's status, notes or dateApplied; owner or admin.
// The owning user and target job cannot be reassigned.
func (s *applicationService) Update(ctx context.Context, p policy.Principal, id string, req *models.UpdateApplicationRequest) (*models.JobApplication, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanModifyApplication(p, app.UserID) {
		return nil, apperror.NewUnauthorizedError("access denied")
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperror.NewValidationError("invalid application status")
		}
		app.Status = *req.Status
	}
	if req.DateApplied != nil {
		if req.DateApplied.IsZero() {
			return nil, apperror.NewValidationError("dateApplied cannot be empty")
		}
		app.DateApplied = *req.DateApplied
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// Delete removes an application; owner or admin
func (s *applicationService) Delete(ctx context.Context, p policy.Principal, id string) error {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanModifyApplication(p, app.UserID) {
		return apperror.NewUnauthorizedError("access denied")
	}

	if err := s.appRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("application deleted", zap.String("application_id", id), zap.String("deleted_by", p.ID))
	return nil
}
