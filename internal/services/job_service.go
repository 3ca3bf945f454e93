package services

import (
	"context"
	"strings"

	"github.com/applytrack/backend/internal/apperror"
	"github.com/applytrack/backend/internal/models"
	"github.com/applytrack/backend/internal/policy"
	"go.uber.org/zap"
)

// JobRepository is the interface that wraps methods for Job table data access
type JobRepository interface {
	// Create inserts a new job posting and assigns its server-side id
	Create(ctx context.Context, job *models.Job) error
	// GetByID retrieves a job by id; a missing job yields a not-found error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	// List retrieves job postings, optionally restricted to active ones
	List(ctx context.Context, activeOnly bool) ([]models.Job, error)
	// Update writes the job's mutable fields
	Update(ctx context.Context, job *models.Job) error
	// Delete removes a job and, via the cascading foreign key, its applications
	Delete(ctx context.Context, id string) error
}

// jobService implements catalog reads for all principals and admin-only mutation
type jobService struct {
	jobRepo JobRepository
	logger  *zap.Logger
}

// NewJobService creates a new job service
func NewJobService(jobRepo JobRepository, logger *zap.Logger) *jobService {
	return &jobService{
		jobRepo: jobRepo,
		logger:  logger,
	}
}

// List returns job postings; readable by any authenticated principal
func (s *jobService) List(ctx context.Context, activeOnly bool) ([]models.Job, error) {
	return s.jobRepo.List(ctx, activeOnly)
}

// Get returns a single job posting; readable by any authenticated principal
func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// validateJobDates enforces that the application deadline does not precede the posted date
func validateJobDates(posted, deadline models.Date) error {
	if posted.IsZero() {
		return apperror.NewValidationError("postedDate is required")
	}
	if deadline.IsZero() {
		return apperror.NewValidationError("applicationDeadline is required")
	}
	if deadline.Before(posted.Time) {
		return apperror.NewValidationError("applicationDeadline cannot be before postedDate")
	}
	return nil
}

// Create adds a job posting; admin only
func (s *jobService) Create(ctx context.Context, p policy.Principal, req *models.CreateJobRequest) (*models.Job, error) {
	if !policy.CanManageJobs(p) {
		return nil, apperror.NewUnauthorizedError("admin access required")
	}

	title := strings.TrimSpace(req.Title)
	company := strings.TrimSpace(req.Company)
	if title == "" || company == "" {
		return nil, apperror.NewValidationError("title and company are required")
	}
	if !req.JobType.Valid() {
		return nil, apperror.NewValidationError("invalid job type")
	}
	if err := validateJobDates(req.PostedDate, req.ApplicationDeadline); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	job := &models.Job{
		Title:               title,
		Company:             company,
		Description:         req.Description,
		Location:            req.Location,
		JobType:             req.JobType,
		SalaryRange:         req.SalaryRange,
		Requirements:        req.Requirements,
		PostedDate:          req.PostedDate,
		ApplicationDeadline: req.ApplicationDeadline,
		IsActive:            isActive,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("job created", zap.String("job_id", job.ID), zap.String("created_by", p.ID))

	return job, nil
}

// Update mutates a job posting; admin only.
// A missing record is reported as not-found before the policy decision.
func (s *jobService) Update(ctx context.Context, p policy.Principal, id string, req *models.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanManageJobs(p) {
		return nil, apperror.NewUnauthorizedError("admin access required")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.NewValidationError("title cannot be empty")
		}
		job.Title = title
	}
	if req.Company != nil {
		company := strings.TrimSpace(*req.Company)
		if company == "" {
			return nil, apperror.NewValidationError("company cannot be empty")
		}
		job.Company = company
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.JobType != nil {
		if !req.JobType.Valid() {
			return nil, apperror.NewValidationError("invalid job type")
		}
		job.JobType = *req.JobType
	}
	if req.SalaryRange != nil {
		job.SalaryRange = *req.SalaryRange
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.PostedDate != nil {
		job.PostedDate = *req.PostedDate
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = *req.ApplicationDeadline
	}
	if err := validateJobDates(job.PostedDate, job.ApplicationDeadline); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// Delete removes a job posting; admin only. Its applications cascade.
func (s *jobService) Delete(ctx context.Context, p policy.Principal, id string) error {
	if _, err := s.jobRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if !policy.CanManageJobs(p) {
		return apperror.NewUnauthorizedError("admin access required")
	}

	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("job deleted", zap.String("job_id", id), zap.String("deleted_by", p.ID))
	return nil
}
