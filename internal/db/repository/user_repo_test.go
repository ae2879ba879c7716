package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreate(t *testing.T) {
	id := uuid.New()
	created := time.Now()
	db := &fakeDB{row: fakeRow{vals: []any{
		id, "user@example.com", "hashed", "Ace", created, (*time.Time)(nil),
	}}}
	repo := NewUserRepository(db)

	u, err := repo.Create(context.Background(), "user@example.com", "hashed", "Ace")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "user@example.com", u.Email)
	assert.Equal(t, "Ace", u.DisplayName)
	assert.Nil(t, u.LastLoginAt)

	require.Len(t, db.statements, 1)
	assert.Contains(t, db.statements[0], "INSERT INTO users")
	assert.Equal(t, "user@example.com", db.args[0][1])
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: &pgconn.PgError{Code: "23505"}}}
	repo := NewUserRepository(db)

	_, err := repo.Create(context.Background(), "user@example.com", "hashed", "Ace")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserRepositoryLookupNotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	repo := NewUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	id := uuid.New()
	lastLogin := time.Now().Add(-time.Hour)
	db := &fakeDB{row: fakeRow{vals: []any{
		id, "user@example.com", "hashed", "Ace", time.Now(), &lastLogin,
	}}}
	repo := NewUserRepository(db)

	u, err := repo.GetByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, lastLogin, *u.LastLoginAt)
}

func TestUserRepositoryUpdateLastLogin(t *testing.T) {
	db := &fakeDB{}
	repo := NewUserRepository(db)
	id := uuid.New()

	require.NoError(t, repo.UpdateLastLogin(context.Background(), id))
	require.Len(t, db.statements, 1)
	assert.Contains(t, db.statements[0], "UPDATE users SET last_login_at")
	assert.Equal(t, id, db.args[0][0])
}
