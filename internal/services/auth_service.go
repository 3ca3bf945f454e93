// Package services implements the business logic between handlers and repositories
package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/applytrack/backend/internal/apperror"
	"github.com/applytrack/backend/internal/auth"
	"github.com/applytrack/backend/internal/models"
	"github.com/applytrack/backend/internal/policy"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthUserRepository is the interface that wraps methods for User table data access needed by the auth service
type AuthUserRepository interface {
	// Create inserts a new user and assigns its server-side id
	Create(ctx context.Context, user *models.User) error
	// GetByEmail retrieves a user by email; a missing user yields a not-found error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID retrieves a user by id; a missing user yields a not-found error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// ExistsByEmail checks if a user with the email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// authService implements registration, login and profile lookup
type authService struct {
	userRepo       AuthUserRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo AuthUserRepository, tokenGenerator *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Register creates a new user account with the default user role
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if name == "" || email == "" || req.Password == "" {
		return nil, apperror.NewValidationError("name, email and password are required")
	}
	if !emailRegex.MatchString(email) {
		return nil, apperror.NewValidationError("invalid email format")
	}
	if len(req.Password) < 8 {
		return nil, apperror.NewValidationError("password must be at least 8 characters long")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return user.ToResponse(), nil
}

// Login verifies credentials and issues a signed token.
// Unknown email and wrong password produce the same generic outcome so the
// response does not reveal which check failed.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.UserResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", nil, apperror.NewAuthError("invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, apperror.NewAuthError("invalid credentials")
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, apperror.NewInternalError("failed to generate token", err)
	}

	return token, user.ToResponse(), nil
}

// Profile returns the authenticated principal's own user record
func (s *authService) Profile(ctx context.Context, p policy.Principal) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}
