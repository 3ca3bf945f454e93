// Package repositories provides raw-SQL data access for the application
package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/applytrack/backend/internal/apperror"
	"github.com/applytrack/backend/internal/models"
	"github.com/google/uuid"
)

// userRepository implements user data access against MySQL
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

// Create inserts a new user into the database
// The id and timestamps are assigned server-side
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return apperror.NewDatabaseError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperror.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get user by id", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperror.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to get user by email", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user exists with the given email
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to check email existence", err)
	}

	return exists, nil
}

// List retrieves all users
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan user row", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to iterate user rows", err)
	}

	return users, nil
}

// Update writes the user's mutable fields
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE users
		SET name = ?, email = ?, role = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.Role, user.UpdatedAt, user.ID)
	if err != nil {
		return apperror.NewDatabaseError("failed to update user", err)
	}

	return nil
}

// Delete removes a user; owned applications are removed by the cascading foreign key
func (r *userRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete user", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDatabaseError("failed to get affected rows", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("user not found")
	}

	return nil
}
