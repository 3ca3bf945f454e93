package services

import (
	"context"
	"errors"
	"testing"

	"github.com/applytrack/backend/internal/apperror"
	"github.com/applytrack/backend/internal/models"
	"github.com/applytrack/backend/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockApplicationRepository is a mock implementation of ApplicationRepository
type mockApplicationRepository struct {
	apps        map[string]*models.JobApplication
	details     map[string]*models.ApplicationDetail
	listResult  []models.ApplicationDetail
	listErr     error
	createErr   error
	updateErr   error
	deleteErr   error
	created     *models.JobApplication
	updated     *models.JobApplication
	deletedID   string
	listOwnerID string
	listStatus  models.ApplicationStatus
}

func (m *mockApplicationRepository) Create(ctx context.Context, app *models.JobApplication) error {
	if m.createErr != nil {
		return m.createErr
	}
	app.ID = "generated-id"
	m.created = app
	return nil
}

func (m *mockApplicationRepository) GetByID(ctx context.Context, id string) (*models.JobApplication, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, apperror.NewNotFoundError("application not found")
	}
	copied := *app
	return &copied, nil
}

func (m *mockApplicationRepository) GetDetailByID(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	detail, ok := m.details[id]
	if !ok {
		return nil, apperror.NewNotFoundError("application not found")
	}
	copied := *detail
	return &copied, nil
}

func (m *mockApplicationRepository) List(ctx context.Context, ownerID string) ([]models.ApplicationDetail, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.listOwnerID = ownerID
	return m.listResult, nil
}

func (m *mockApplicationRepository) ListByStatus(ctx context.Context, status models.ApplicationStatus, ownerID string) ([]models.ApplicationDetail, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.listStatus = status
	m.listOwnerID = ownerID
	return m.listResult, nil
}

func (m *mockApplicationRepository) Update(ctx context.Context, app *models.JobApplication) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = app
	return nil
}

func (m *mockApplicationRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

// mockApplicationJobRepository is a mock implementation of ApplicationJobRepository
type mockApplicationJobRepository struct {
	jobs map[string]*models.Job
}

func (m *mockApplicationJobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, apperror.NewNotFoundError("job not found")
	}
	return job, nil
}

func applicationFixtures() map[string]*models.JobApplication {
	return map[string]*models.JobApplication{
		"app-1": {ID: "app-1", Status: models.StatusApplied, UserID: "user-1", JobID: "job-1"},
		"app-2": {ID: "app-2", Status: models.StatusOffered, UserID: "user-2", JobID: "job-1"},
	}
}

func detailFixtures() map[string]*models.ApplicationDetail {
	return map[string]*models.ApplicationDetail{
		"app-1": {JobApplication: models.JobApplication{ID: "app-1", Status: models.StatusApplied, UserID: "user-1", JobID: "job-1"}},
		"app-2": {JobApplication: models.JobApplication{ID: "app-2", Status: models.StatusOffered, UserID: "user-2", JobID: "job-1"}},
	}
}

func TestApplicationService_List(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	jobRepo := &mockApplicationJobRepository{}

	tests := []struct {
		name            string
		principal       policy.Principal
		expectedOwnerID string
	}{
		{
			name:            "admin sees all records",
			principal:       adminPrincipal,
			expectedOwnerID: "",
		},
		{
			name:            "regular user scoped to own records",
			principal:       alicePrincipal,
			expectedOwnerID: "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockApplicationRepository{listResult: []models.ApplicationDetail{}}
			svc := NewApplicationService(repo, jobRepo, logger)

			_, err := svc.List(context.Background(), tt.principal)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOwnerID, repo.listOwnerID)
		})
	}
}

func TestApplicationService_ListByStatus(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	jobRepo := &mockApplicationJobRepository{}

	tests := []struct {
		name            string
		principal       policy.Principal
		status          string
		expectedError   bool
		errorContains   string
		expectedOwnerID string
	}{
		{
			name:            "admin unscoped",
			principal:       adminPrincipal,
			status:          "Interviewing",
			expectedOwnerID: "",
		},
		{
			name:            "regular user scoped",
			principal:       alicePrincipal,
			status:          "Rejected",
			expectedOwnerID: "user-1",
		},
		{
			name:          "unknown status rejected before filtering",
			principal:     adminPrincipal,
			status:        "Ghosted",
			expectedError: true,
			errorContains: "invalid application status",
		},
		{
			name:          "status is case sensitive",
			principal:     adminPrincipal,
			status:        "applied",
			expectedError: true,
			errorContains: "invalid application status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockApplicationRepository{listResult: []models.ApplicationDetail{}}
			svc := NewApplicationService(repo, jobRepo, logger)

			result, err := svc.ListByStatus(context.Background(), tt.principal, tt.status)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.True(t, apperror.IsValidation(err))
				assert.Empty(t, repo.listStatus)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.ApplicationStatus(tt.status), repo.listStatus)
				assert.Equal(t, tt.expectedOwnerID, repo.listOwnerID)
			}
		})
	}
}

func TestApplicationService_Get(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	jobRepo := &mockApplicationJobRepository{}

	tests := []struct {
		name          string
		principal     policy.Principal
		id            string
		expectedError bool
		unauthorized  bool
		notFound      bool
	}{
		{
			name:      "owner reads own application",
			principal: alicePrincipal,
			id:        "app-1",
		},
		{
			name:      "admin reads any application",
			principal: adminPrincipal,
			id:        "app-2",
		},
		{
			name:          "non-owner denied",
			principal:     alicePrincipal,
			id:            "app-2",
			expectedError: true,
			unauthorized:  true,
		},
		{
			name:          "missing record reported as not found even for non-owner",
			principal:     alicePrincipal,
			id:            "missing",
			expectedError: true,
			notFound:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockApplicationRepository{details: detailFixtures()}
			svc := NewApplicationService(repo, jobRepo, logger)

			result, err := svc.Get(context.Background(), tt.principal, tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
				assert.Equal(t, tt.unauthorized, apperror.IsUnauthorized(err))
				assert.Equal(t, tt.notFound, apperror.IsNotFound(err))
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, tt.id, result.ID)
			}
		})
	}
}

func TestApplicationService_Create(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	jobRepo := &mockApplicationJobRepository{jobs: map[string]*models.Job{
		"job-1": {ID: "job-1", Title: "Backend Engineer"},
	}}

	valid := func() *models.CreateApplicationRequest {
		return &models.CreateApplicationRequest{
			JobID:       "job-1",
			DateApplied: mustDate(t, "2026-08-15"),
			Notes:       "referred by a friend",
		}
	}

	tests := []struct {
		name          string
		principal     policy.Principal
		mutate        func(*models.CreateApplicationRequest)
		appRepo       *mockApplicationRepository
		expectedError bool
		errorContains string
		notFound      bool
		check         func(t *testing.T, app *models.JobApplication)
	}{
		{
			name:      "success with default status",
			principal: alicePrincipal,
			mutate:    func(r *models.CreateApplicationRequest) {},
			appRepo:   &mockApplicationRepository{},
			check: func(t *testing.T, app *models.JobApplication) {
				assert.Equal(t, "generated-id", app.ID)
				assert.Equal(t, models.StatusApplied, app.Status)
				assert.Equal(t, "user-1", app.UserID)
			},
		},
		{
			name:      "explicit status",
			principal: alicePrincipal,
			mutate:    func(r *models.CreateApplicationRequest) { r.Status = models.StatusInterviewing },
			appRepo:   &mockApplicationRepository{},
			check: func(t *testing.T, app *models.JobApplication) {
				assert.Equal(t, models.StatusInterviewing, app.Status)
			},
		},
		{
			name:          "missing jobId",
			principal:     alicePrincipal,
			mutate:        func(r *models.CreateApplicationRequest) { r.JobID = "" },
			appRepo:       &mockApplicationRepository{},
			expectedError: true,
			errorContains: "jobId is required",
		},
		{
			name:          "missing dateApplied",
			principal:     alicePrincipal,
			mutate:        func(r *models.CreateApplicationRequest) { r.DateApplied = models.Date{} },
			appRepo:       &mockApplicationRepository{},
			expectedError: true,
			errorContains: "dateApplied is required",
		},
		{
			name:          "invalid status",
			principal:     alicePrincipal,
			mutate:        func(r *models.CreateApplicationRequest) { r.Status = "Ghosted" },
			appRepo:       &mockApplicationRepository{},
			expectedError: true,
			errorContains: "invalid application status",
		},
		{
			name:          "nonexistent job",
			principal:     alicePrincipal,
			mutate:        func(r *models.CreateApplicationRequest) { r.JobID = "missing" },
			appRepo:       &mockApplicationRepository{},
			expectedError: true,
			errorContains: "job not found",
			notFound:      true,
		},
		{
			name:          "database error",
			principal:     alicePrincipal,
			mutate:        func(r *models.CreateApplicationRequest) {},
			appRepo:       &mockApplicationRepository{createErr: apperror.NewDatabaseError("failed to create application", errors.New("db"))},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewApplicationService(tt.appRepo, jobRepo, logger)

			req := valid()
			tt.mutate(req)

			app, err := svc.Create(context.Background(), tt.principal, req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, app)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Equal(t, tt.notFound, apperror.IsNotFound(err))
			} else {
				assert.NoError(t, err)
				require.NotNil(t, app)
				if tt.check != nil {
					tt.check(t, app)
				}
			}
		})
	}
}

// The owner is always the authenticated caller, never taken from the payload
func TestApplicationService_Create_ForcesOwner(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	jobRepo := &mockApplicationJobRepository{jobs: map[string]*models.Job{"job-1": {ID: "job-1"}}}
	repo := &mockApplicationRepository{}
	svc := NewApplicationService(repo, jobRepo, logger)

	app, err := svc.Create(context.Background(), bobPrincipal, &models.CreateApplicationRequest{
		JobID:       "job-1",
		DateApplied: mustDate(t, "2026-08-15"),
	})

	require.NoError(t, err)
	assert.Equal(t, bobPrincipal.ID, app.UserID)
	assert.Equal(t, bobPrincipal.ID, repo.created.UserID)
}

func TestApplicationService_Update(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	jobRepo := &mockApplicationJobRepository{}

	statusPtr := func(s models.ApplicationStatus) *models.ApplicationStatus { return &s }
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name          string
		principal     policy.Principal
		id            string
		req           *models.UpdateApplicationRequest
		expectedError bool
		errorContains string
		unauthorized  bool
		notFound      bool
		check         func(t *testing.T, app *models.JobApplication)
	}{
		{
			name:      "owner updates status",
			principal: alicePrincipal,
			id:        "app-1",
			req:       &models.UpdateApplicationRequest{Status: statusPtr(models.StatusInterviewing)},
			check: func(t *testing.T, app *models.JobApplication) {
				assert.Equal(t, models.StatusInterviewing, app.Status)
				// owner and job survive the update untouched
				assert.Equal(t, "user-1", app.UserID)
				assert.Equal(t, "job-1", app.JobID)
			},
		},
		{
			name:      "admin updates any record",
			principal: adminPrincipal,
			id:        "app-2",
			req:       &models.UpdateApplicationRequest{Notes: strPtr("negotiating offer")},
			check: func(t *testing.T, app *models.JobApplication) {
				assert.Equal(t, "negotiating offer", app.Notes)
			},
		},
		{
			name:          "non-owner denied",
			principal:     alicePrincipal,
			id:            "app-2",
			req:           &models.UpdateApplicationRequest{Status: statusPtr(models.StatusRejected)},
			expectedError: true,
			unauthorized:  true,
		},
		{
			name:          "missing record reported as not found even for non-owner",
			principal:     alicePrincipal,
			id:            "missing",
			req:           &models.UpdateApplicationRequest{Status: statusPtr(models.StatusRejected)},
			expectedError: true,
			notFound:      true,
		},
		{
			name:          "invalid status rejected",
			principal:     alicePrincipal,
			id:            "app-1",
			req:           &models.UpdateApplicationRequest{Status: statusPtr("Ghosted")},
			expectedError: true,
			errorContains: "invalid application status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockApplicationRepository{apps: applicationFixtures()}
			svc := NewApplicationService(repo, jobRepo, logger)

			app, err := svc.Update(context.Background(), tt.principal, tt.id, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, app)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Equal(t, tt.unauthorized, apperror.IsUnauthorized(err))
				assert.Equal(t, tt.notFound, apperror.IsNotFound(err))
				assert.Nil(t, repo.updated)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, app)
				if tt.check != nil {
					tt.check(t, app)
				}
			}
		})
	}
}

func TestApplicationService_Delete(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	jobRepo := &mockApplicationJobRepository{}

	tests := []struct {
		name          string
		principal     policy.Principal
		id            string
		expectedError bool
		unauthorized  bool
		notFound      bool
	}{
		{
			name:      "owner deletes own application",
			principal: alicePrincipal,
			id:        "app-1",
		},
		{
			name:      "admin deletes any application",
			principal: adminPrincipal,
			id:        "app-2",
		},
		{
			name:          "non-owner denied",
			principal:     bobPrincipal,
			id:            "app-1",
			expectedError: true,
			unauthorized:  true,
		},
		{
			name:          "missing record reported as not found",
			principal:     alicePrincipal,
			id:            "missing",
			expectedError: true,
			notFound:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockApplicationRepository{apps: applicationFixtures()}
			svc := NewApplicationService(repo, jobRepo, logger)

			err := svc.Delete(context.Background(), tt.principal, tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, tt.unauthorized, apperror.IsUnauthorized(err))
				assert.Equal(t, tt.notFound, apperror.IsNotFound(err))
				assert.Empty(t, repo.deletedID)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, repo.deletedID)
			}
		})
	}
}
