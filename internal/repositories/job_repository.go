package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/applytrack/backend/internal/apperror"
	"github.com/applytrack/backend/internal/models"
	"github.com/google/uuid"
)

// jobRepository implements job-catalog data access against MySQL
type jobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *sql.DB) *jobRepository {
	return &jobRepository{
		db: db,
	}
}

const jobColumns = `id, title, company, description, location, job_type, salary_range,
		requirements, posted_date, application_deadline, is_active, created_at, updated_at`

// scanJob scans a job row in jobColumns order
func scanJob(row interface{ Scan(...any) error }, job *models.Job) error {
	return row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Description,
		&job.Location,
		&job.JobType,
		&job.SalaryRange,
		&job.Requirements,
		&job.PostedDate,
		&job.ApplicationDeadline,
		&job.IsActive,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
}

// Create inserts a new job posting
func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	job.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	job.CreatedAt = now
	job.UpdatedAt = now

	query := `
		INSERT INTO jobs (id, title, company, description, location, job_type, salary_range,
			requirements, posted_date, application_deadline, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.Title, job.Company, job.Description, job.Location, job.JobType,
		job.SalaryRange, job.Requirements, job.PostedDate, job.ApplicationDeadline,
		job.IsActive, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return apperror.NewDatabaseError("failed to create job", err)
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *jobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ? LIMIT 1`

	job := &models.Job{}
	err := scanJob(r.db.QueryRowContext(ctx, query, id), job)

	if err == sql.ErrNoRows {
		return nil, apperror.NewNotFoundError("job not found")
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get job by id", err)
	}

	return job, nil
}

// List retrieves job postings, optionally restricted to active ones
func (r *jobRepository) List(ctx context.Context, activeOnly bool) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY posted_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list jobs", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var job models.Job
		if err := scanJob(rows, &job); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan job row", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate job rows", err)
	}

	return jobs, nil
}

// Update writes the job's mutable fields
func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE jobs
		SET title = ?, company = ?, description = ?, location = ?, job_type = ?,
			salary_range = ?, requirements = ?, posted_date = ?, application_deadline = ?,
			is_active = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		job.Title, job.Company, job.Description, job.Location, job.JobType,
		job.SalaryRange, job.Requirements, job.PostedDate, job.ApplicationDeadline,
		job.IsActive, job.UpdatedAt, job.ID)
	if err != nil {
		return apperror.NewDatabaseError("failed to update job", err)
	}

	return nil
}

// Delete removes a job posting; its applications are removed by the cascading foreign key
func (r *jobRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM jobs WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete job", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDatabaseError("failed to get affected rows", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("job not found")
	}

	return nil
}
