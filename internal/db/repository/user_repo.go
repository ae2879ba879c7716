// Package repository provides hand-written pgx queries for the service's
// Postgres tables.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// User is a stored account row.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// UserRepository persists accounts.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account. A duplicate email yields ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash, displayName string) (*User, error) {
	const q = `
		INSERT INTO users (user_id, email, password_hash, display_name, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING user_id, email, password_hash, display_name, created_at, last_login_at`

	row := r.db.QueryRow(ctx, q, uuid.New(), email, passwordHash, displayName)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByEmail looks up an account by its exact email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
		SELECT user_id, email, password_hash, display_name, created_at, last_login_at
		FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRow(ctx, q, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetByID looks up an account by its primary key.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	const q = `
		SELECT user_id, email, password_hash, display_name, created_at, last_login_at
		FROM users WHERE user_id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// UpdateLastLogin stamps the account's most recent login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE users SET last_login_at = now() WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.CreatedAt, &u.LastLoginAt); err != nil {
		return nil, err
	}
	return &u, nil
}
