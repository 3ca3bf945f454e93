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

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	users               map[string]*models.User
	listResult          []models.User
	listErr             error
	existsByEmailResult bool
	existsByEmailErr    error
	updateErr           error
	deleteErr           error
	updated             *models.User
	deletedID           string
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NewNotFoundError("user not found")
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailErr != nil {
		return false, m.existsByEmailErr
	}
	return m.existsByEmailResult, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]models.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = user
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

var (
	adminPrincipal = policy.Principal{ID: "admin-1", Role: models.RoleAdmin}
	alicePrincipal = policy.Principal{ID: "user-1", Role: models.RoleUser}
	bobPrincipal   = policy.Principal{ID: "user-2", Role: models.RoleUser}
)

func userFixtures() map[string]*models.User {
	return map[string]*models.User{
		"user-1":  {ID: "user-1", Name: "Alice", Email: "alice@example.com", Role: models.RoleUser},
		"user-2":  {ID: "user-2", Name: "Bob", Email: "bob@example.com", Role: models.RoleUser},
		"admin-1": {ID: "admin-1", Name: "Root", Email: "root@example.com", Role: models.RoleAdmin},
	}
}

func TestUserService_List(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	tests := []struct {
		name          string
		principal     policy.Principal
		userRepo      *mockUserRepository
		expectedError bool
		unauthorized  bool
		expectedCount int
	}{
		{
			name:      "admin sees all users",
			principal: adminPrincipal,
			userRepo: &mockUserRepository{listResult: []models.User{
				{ID: "user-1"}, {ID: "user-2"}, {ID: "admin-1"},
			}},
			expectedError: false,
			expectedCount: 3,
		},
		{
			name:          "regular user denied",
			principal:     alicePrincipal,
			userRepo:      &mockUserRepository{},
			expectedError: true,
			unauthorized:  true,
		},
		{
			name:          "database error",
			principal:     adminPrincipal,
			userRepo:      &mockUserRepository{listErr: apperror.NewDatabaseError("failed to list users", errors.New("db"))},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.userRepo, logger)

			result, err := svc.List(context.Background(), tt.principal)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
				assert.Equal(t, tt.unauthorized, apperror.IsUnauthorized(err))
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}
		})
	}
}

func TestUserService_Get(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	tests := []struct {
		name          string
		principal     policy.Principal
		id            string
		expectedError bool
		unauthorized  bool
		notFound      bool
	}{
		{
			name:      "self access",
			principal: alicePrincipal,
			id:        "user-1",
		},
		{
			name:      "admin access to any user",
			principal: adminPrincipal,
			id:        "user-2",
		},
		{
			name:          "other user denied",
			principal:     alicePrincipal,
			id:            "user-2",
			expectedError: true,
			unauthorized:  true,
		},
		{
			name:          "missing user reported as not found even for non-owner",
			principal:     alicePrincipal,
			id:            "missing",
			expectedError: true,
			notFound:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&mockUserRepository{users: userFixtures()}, logger)

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

func TestUserService_Update(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	strPtr := func(s string) *string { return &s }
	rolePtr := func(r models.Role) *models.Role { return &r }

	tests := []struct {
		name          string
		principal     policy.Principal
		id            string
		req           *models.UpdateUserRequest
		userRepo      *mockUserRepository
		expectedError bool
		errorContains string
		unauthorized  bool
		notFound      bool
		conflict      bool
		check         func(t *testing.T, repo *mockUserRepository, resp *models.UserResponse)
	}{
		{
			name:      "self updates name",
			principal: alicePrincipal,
			id:        "user-1",
			req:       &models.UpdateUserRequest{Name: strPtr("  Alice Smith  ")},
			userRepo:  &mockUserRepository{users: userFixtures()},
			check: func(t *testing.T, repo *mockUserRepository, resp *models.UserResponse) {
				assert.Equal(t, "Alice Smith", resp.Name)
				require.NotNil(t, repo.updated)
				assert.Equal(t, "Alice Smith", repo.updated.Name)
			},
		},
		{
			name:      "self updates email",
			principal: alicePrincipal,
			id:        "user-1",
			req:       &models.UpdateUserRequest{Email: strPtr("NEW@Example.com")},
			userRepo:  &mockUserRepository{users: userFixtures()},
			check: func(t *testing.T, repo *mockUserRepository, resp *models.UserResponse) {
				assert.Equal(t, "new@example.com", resp.Email)
			},
		},
		{
			name:      "admin changes role",
			principal: adminPrincipal,
			id:        "user-1",
			req:       &models.UpdateUserRequest{Role: rolePtr(models.RoleAdmin)},
			userRepo:  &mockUserRepository{users: userFixtures()},
			check: func(t *testing.T, repo *mockUserRepository, resp *models.UserResponse) {
				assert.Equal(t, models.RoleAdmin, resp.Role)
			},
		},
		{
			name:          "non-admin cannot change own role",
			principal:     alicePrincipal,
			id:            "user-1",
			req:           &models.UpdateUserRequest{Role: rolePtr(models.RoleAdmin)},
			userRepo:      &mockUserRepository{users: userFixtures()},
			expectedError: true,
			errorContains: "only admin can change role",
			unauthorized:  true,
		},
		{
			name:          "other user denied",
			principal:     alicePrincipal,
			id:            "user-2",
			req:           &models.UpdateUserRequest{Name: strPtr("Mallory")},
			userRepo:      &mockUserRepository{users: userFixtures()},
			expectedError: true,
			unauthorized:  true,
		},
		{
			name:          "missing user reported as not found",
			principal:     alicePrincipal,
			id:            "missing",
			req:           &models.UpdateUserRequest{Name: strPtr("Ghost")},
			userRepo:      &mockUserRepository{users: userFixtures()},
			expectedError: true,
			notFound:      true,
		},
		{
			name:          "empty name rejected",
			principal:     alicePrincipal,
			id:            "user-1",
			req:           &models.UpdateUserRequest{Name: strPtr("   ")},
			userRepo:      &mockUserRepository{users: userFixtures()},
			expectedError: true,
			errorContains: "name cannot be empty",
		},
		{
			name:          "invalid email rejected",
			principal:     alicePrincipal,
			id:            "user-1",
			req:           &models.UpdateUserRequest{Email: strPtr("not-an-email")},
			userRepo:      &mockUserRepository{users: userFixtures()},
			expectedError: true,
			errorContains: "invalid email format",
		},
		{
			name:          "taken email rejected",
			principal:     alicePrincipal,
			id:            "user-1",
			req:           &models.UpdateUserRequest{Email: strPtr("bob@example.com")},
			userRepo:      &mockUserRepository{users: userFixtures(), existsByEmailResult: true},
			expectedError: true,
			errorContains: "email already registered",
			conflict:      true,
		},
		{
			name:          "invalid role rejected",
			principal:     adminPrincipal,
			id:            "user-1",
			req:           &models.UpdateUserRequest{Role: rolePtr("superuser")},
			userRepo:      &mockUserRepository{users: userFixtures()},
			expectedError: true,
			errorContains: "invalid role",
		},
		{
			name:          "database error on update",
			principal:     alicePrincipal,
			id:            "user-1",
			req:           &models.UpdateUserRequest{Name: strPtr("Alice")},
			userRepo:      &mockUserRepository{users: userFixtures(), updateErr: apperror.NewDatabaseError("failed to update user", errors.New("db"))},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.userRepo, logger)

			resp, err := svc.Update(context.Background(), tt.principal, tt.id, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, resp)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Equal(t, tt.unauthorized, apperror.IsUnauthorized(err))
				assert.Equal(t, tt.notFound, apperror.IsNotFound(err))
				assert.Equal(t, tt.conflict, apperror.IsConflict(err))
			} else {
				assert.NoError(t, err)
				require.NotNil(t, resp)
				if tt.check != nil {
					tt.check(t, tt.userRepo, resp)
				}
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	tests := []struct {
		name          string
		principal     policy.Principal
		id            string
		expectedError bool
		unauthorized  bool
		notFound      bool
	}{
		{
			name:      "self delete",
			principal: alicePrincipal,
			id:        "user-1",
		},
		{
			name:      "admin deletes any user",
			principal: adminPrincipal,
			id:        "user-2",
		},
		{
			name:          "other user denied",
			principal:     bobPrincipal,
			id:            "user-1",
			expectedError: true,
			unauthorized:  true,
		},
		{
			name:          "missing user reported as not found",
			principal:     adminPrincipal,
			id:            "missing",
			expectedError: true,
			notFound:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{users: userFixtures()}
			svc := NewUserService(repo, logger)

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
