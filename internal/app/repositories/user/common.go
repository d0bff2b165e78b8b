package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/db"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/dberrors"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// EmailConstraint is the unique constraint on users.email
const EmailConstraint = "users_email_key"

// Repository handles identity rows in the users table
type Repository struct {
	db db.Querier
}

// NewRepository creates a new Repository
func NewRepository(q db.Querier) *Repository {
	return &Repository{
		db: q,
	}
}

// CreateIdentity inserts a user through q (normally an open transaction) and returns its id.
// A taken email yields apperrors.ErrEmailAlreadyExists.
func (r *Repository) CreateIdentity(ctx context.Context, q db.Querier, email, firstName, lastName, passwordHash string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO users (email, first_name, last_name, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		email, firstName, lastName, passwordHash).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, EmailConstraint) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// FindIdentityByEmail retrieves a user by email, active or not
func (r *Repository) FindIdentityByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanOne(ctx, `
		SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
		FROM users
		WHERE email = $1`, email)
}

// FindIdentityByID retrieves a user by ID, active or not
func (r *Repository) FindIdentityByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanOne(ctx, `
		SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
		FROM users
		WHERE id = $1`, id)
}

func (r *Repository) scanOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}
