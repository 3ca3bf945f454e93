package services

import (
	"context"
	"strings"

	"github.com/applytrack/backend/internal/apperror"
	"github.com/applytrack/backend/internal/models"
	"github.com/applytrack/backend/internal/policy"
	"go.uber.org/zap"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// GetByID retrieves a user by id; a missing user yields a not-found error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// ExistsByEmail checks if a user with the email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// List retrieves all users
	List(ctx context.Context) ([]models.User, error)
	// Update writes the user's mutable fields
	Update(ctx context.Context, user *models.User) error
	// Delete removes a user and, via the cascading foreign key, their applications
	Delete(ctx context.Context, id string) error
}

// userService implements user management with admin-or-self authorization
type userService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, logger *zap.Logger) *userService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List returns every user; admin only
func (s *userService) List(ctx context.Context, p policy.Principal) ([]models.UserResponse, error) {
	if !policy.CanListUsers(p) {
		return nil, apperror.NewUnauthorizedError("admin access required")
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *users[i].ToResponse())
	}

	return responses, nil
}

// Get returns a user record; admin or self.
// A missing record is reported as not-found before any ownership decision.
func (s *userService) Get(ctx context.Context, p policy.Principal, id string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanViewUser(p, user.ID) {
		return nil, apperror.NewUnauthorizedError("access denied")
	}

	return user.ToResponse(), nil
}

// Update mutates a user record; admin or self, role changes admin-only
func (s *userService) Update(ctx context.Context, p policy.Principal, id string, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanModifyUser(p, user.ID) {
		return nil, apperror.NewUnauthorizedError("access denied")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.NewValidationError("name cannot be empty")
		}
		user.Name = name
	}

	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if !emailRegex.MatchString(email) {
			return nil, apperror.NewValidationError("invalid email format")
		}
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, apperror.NewConflictError("email already registered")
			}
			user.Email = email
		}
	}

	if req.Role != nil {
		if !policy.CanChangeRole(p) {
			return nil, apperror.NewUnauthorizedError("only admin can change role")
		}
		if !req.Role.Valid() {
			return nil, apperror.NewValidationError("invalid role")
		}
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// Delete removes a user record; admin or self. Owned applications cascade.
func (s *userService) Delete(ctx context.Context, p policy.Principal, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanModifyUser(p, user.ID) {
		return apperror.NewUnauthorizedError("access denied")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("deleted_by", p.ID))
	return nil
}
