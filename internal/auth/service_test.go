package auth

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devanshsoni09/prep-platform/internal/auth/jwt"
	"github.com/devanshsoni09/prep-platform/internal/db/repository"
)

type memoryUserStore struct {
	byEmail map[string]*repository.User
	byID    map[uuid.UUID]*repository.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{
		byEmail: map[string]*repository.User{},
		byID:    map[uuid.UUID]*repository.User{},
	}
}

func (m *memoryUserStore) Create(_ context.Context, email, passwordHash, displayName string) (*repository.User, error) {
	if _, ok := m.byEmail[email]; ok {
		return nil, repository.ErrEmailTaken
	}
	u := &repository.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash, DisplayName: displayName}
	m.byEmail[email] = u
	m.byID[u.ID] = u
	return u, nil
}

func (m *memoryUserStore) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUserStore) GetByID(_ context.Context, id uuid.UUID) (*repository.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUserStore) UpdateLastLogin(_ context.Context, _ uuid.UUID) error {
	return nil
}

func newTestService() (*Service, *memoryUserStore) {
	store := newMemoryUserStore()
	cfg := jwt.TokenConfig{
		AccessSecret:  []byte("test-secret"),
		RefreshSecret: []byte("test-secret-refresh"),
	}
	return NewService(store, cfg, zerolog.New(io.Discard)), store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()

	user, tokens, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "dev@example.com",
		Password:    "supersecret",
		DisplayName: "Dev",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Dev", claims.DisplayName)

	_, loginTokens, err := svc.Login(context.Background(), LoginRequest{Email: "dev@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, loginTokens.AccessToken)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	req := RegisterRequest{Email: "dev@example.com", Password: "supersecret", DisplayName: "Dev"}
	_, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "supersecret", DisplayName: "Dev"})
	assert.Error(t, err)

	_, _, err = svc.Register(context.Background(), RegisterRequest{Email: "dev@example.com", Password: "short", DisplayName: "Dev"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Register(context.Background(), RegisterRequest{Email: "dev@example.com", Password: "supersecret", DisplayName: "Dev"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), LoginRequest{Email: "dev@example.com", Password: "wrongpassword"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email yields the same error as a bad password")
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc, _ := newTestService()

	_, tokens, err := svc.Register(context.Background(), RegisterRequest{Email: "dev@example.com", Password: "supersecret", DisplayName: "Dev"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	assert.Error(t, err, "access tokens are not valid refresh tokens")
}
