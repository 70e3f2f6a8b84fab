package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/rental-analyzer/internal/models"
	"github.com/lib/pq"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when an insert violates a unique constraint
var ErrAlreadyExists = errors.New("already exists")

// unique_violation
const pqUniqueViolation = "23505"

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO rental.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("user %s: %w", user.Email, ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM rental.users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveReferenceRate stores a fetched reference rate snapshot
func (r *Repository) SaveReferenceRate(ctx context.Context, rate *models.ReferenceRate) error {
	query := `
		INSERT INTO rental.reference_rates (source, rate, margin, fetched_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, fetched_at`
	err := r.db.QueryRowContext(ctx, query, rate.Source, rate.Rate, rate.Margin).
		Scan(&rate.ID, &rate.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to save reference rate: %w", err)
	}
	return nil
}

// LatestReferenceRate returns the most recent reference rate snapshot
func (r *Repository) LatestReferenceRate(ctx context.Context) (*models.ReferenceRate, error) {
	rate := &models.ReferenceRate{}
	query := `
		SELECT id, source, rate, margin, fetched_at
		FROM rental.reference_rates
		ORDER BY fetched_at DESC
		LIMIT 1`
	err := r.db.QueryRowContext(ctx, query).
		Scan(&rate.ID, &rate.Source, &rate.Rate, &rate.Margin, &rate.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reference rate: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reference rate: %w", err)
	}
	return rate, nil
}
