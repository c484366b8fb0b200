package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rjoshi/gradevault/internal/app/models"
	"github.com/rjoshi/gradevault/internal/pkg/apperrors"
	"github.com/rjoshi/gradevault/internal/pkg/dberrors"
)

// IUserRepository defines user persistence operations.
type IUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// UserRepository is the PostgreSQL-backed IUserRepository.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail retrieves a user by email. Returns apperrors.ErrUserNotFound
// when no row exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, name, rollno FROM users WHERE email = $1`

	user := &models.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.Name, &user.RollNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create inserts a new user, generating its id when unset. A duplicate
// email maps to apperrors.ErrEmailAlreadyExists so callers can re-fetch
// the row another request provisioned first; a duplicate roll number on a
// different email maps to apperrors.ErrRollNoAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `INSERT INTO users (id, email, name, rollno) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Name, user.RollNo)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsUniqueViolation(err, "users_rollno_key") {
			return apperrors.ErrRollNoAlreadyExists
		}
		return err
	}
	return nil
}
