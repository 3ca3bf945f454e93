package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/applytrack/backend/internal/apperror"
	"github.com/applytrack/backend/internal/models"
	"github.com/google/uuid"
)

// applicationRepository implements application-ledger data access against MySQL
type applicationRepository struct {
	db *sql.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *sql.DB) *applicationRepository {
	return &applicationRepository{
		db: db,
	}
}

// detailColumns selects an application row joined with its job and applicant summary
const detailColumns = `
		a.id, a.status, a.date_applied, a.notes, a.user_id, a.job_id, a.created_at, a.updated_at,
		j.id, j.title, j.company, j.description, j.location, j.job_type, j.salary_range,
		j.requirements, j.posted_date, j.application_deadline, j.is_active, j.created_at, j.updated_at,
		u.id, u.name, u.email`

const detailJoins = `
		FROM job_applications a
		INNER JOIN jobs j ON j.id = a.job_id
		INNER JOIN users u ON u.id = a.user_id`

// scanDetail scans an application detail row in detailColumns order
func scanDetail(row interface{ Scan(...any) error }, detail *models.ApplicationDetail) error {
	return row.Scan(
		&detail.ID,
		&detail.Status,
		&detail.DateApplied,
		&detail.Notes,
		&detail.UserID,
		&detail.JobID,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Job.ID,
		&detail.Job.Title,
		&detail.Job.Company,
		&detail.Job.Description,
		&detail.Job.Location,
		&detail.Job.JobType,
		&detail.Job.SalaryRange,
		&detail.Job.Requirements,
		&detail.Job.PostedDate,
		&detail.Job.ApplicationDeadline,
		&detail.Job.IsActive,
		&detail.Job.CreatedAt,
		&detail.Job.UpdatedAt,
		&detail.Applicant.ID,
		&detail.Applicant.Name,
		&detail.Applicant.Email,
	)
}

// Create inserts a new application record
func (r *applicationRepository) Create(ctx context.Context, app *models.JobApplication) error {
	app.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	app.CreatedAt = now
	app.UpdatedAt = now

	query := `
		INSERT INTO job_applications (id, status, date_applied, notes, user_id, job_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.Status, app.DateApplied, app.Notes, app.UserID, app.JobID,
		app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return apperror.NewDatabaseError("failed to create application", err)
	}

	return nil
}

// GetByID retrieves a bare application record by ID
func (r *applicationRepository) GetByID(ctx context.Context, id string) (*models.JobApplication, error) {
	query := `
		SELECT id, status, date_applied, notes, user_id, job_id, created_at, updated_at
		FROM job_applications
		WHERE id = ?
		LIMIT 1
	`

	app := &models.JobApplication{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&app.ID,
		&app.Status,
		&app.DateApplied,
		&app.Notes,
		&app.UserID,
		&app.JobID,
		&app.CreatedAt,
		&app.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperror.NewNotFoundError("application not found")
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get application by id", err)
	}

	return app, nil
}

// GetDetailByID retrieves an application by ID with its job and applicant embedded
func (r *applicationRepository) GetDetailByID(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	query := `SELECT` + detailColumns + detailJoins + `
		WHERE a.id = ?
		LIMIT 1`

	detail := &models.ApplicationDetail{}
	err := scanDetail(r.db.QueryRowContext(ctx, query, id), detail)

	if err == sql.ErrNoRows {
		return nil, apperror.NewNotFoundError("application not found")
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get application by id", err)
	}

	return detail, nil
}

// List retrieves application records with their job and applicant embedded.
// An empty ownerID returns every record; otherwise rows are restricted to the owner.
func (r *applicationRepository) List(ctx context.Context, ownerID string) ([]models.ApplicationDetail, error) {
	query := `SELECT` + detailColumns + detailJoins
	args := []any{}

	if ownerID != "" {
		query += ` WHERE a.user_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY a.date_applied DESC`

	return r.queryDetails(ctx, query, args...)
}

// ListByStatus retrieves application records with the given status, scoped like List
func (r *applicationRepository) ListByStatus(ctx context.Context, status models.ApplicationStatus, ownerID string) ([]models.ApplicationDetail, error) {
	query := `SELECT` + detailColumns + detailJoins + ` WHERE a.status = ?`
	args := []any{status}

	if ownerID != "" {
		query += ` AND a.user_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY a.date_applied DESC`

	return r.queryDetails(ctx, query, args...)
}

func (r *applicationRepository) queryDetails(ctx context.Context, query string, args ...any) ([]models.ApplicationDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list applications", err)
	}
	defer rows.Close()

	details := []models.ApplicationDetail{}
	for rows.Next() {
		var detail models.ApplicationDetail
		if err := scanDetail(rows, &detail); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan application row", err)
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate application rows", err)
	}

	return details, nil
}

// Update writes the application's mutable fields
// The owning user and target job are immutable after creation
func (r *applicationRepository) Update(ctx context.Context, app *models.JobApplication) error {
	app.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE job_applications
		SET status = ?, date_applied = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		app.Status, app.DateApplied, app.Notes, app.UpdatedAt, app.ID)
	if err != nil {
		return apperror.NewDatabaseError("failed to update application", err)
	}

	return nil
}

// Delete removes an application record
func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM job_applications WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete application", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDatabaseError("failed to get affected rows", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("application not found")
	}

	return nil
}
