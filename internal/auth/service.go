package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/google/uuid"

	"github.com/rs/zerolog"

	"github.com/devanshsoni09/prep-platform/internal/auth/jwt"
	"github.com/devanshsoni09/prep-platform/internal/db/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore abstracts account persistence for tests.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, displayName string) (*repository.User, error)
	GetByEmail(ctx context.Context, email string) (*repository.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*repository.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// Service handles authentication and account management.
type Service struct {
	users    UserStore
	tokenMgr *jwt.Manager
	logger   zerolog.Logger
}

// NewService creates an authentication service.
func NewService(users UserStore, tokenCfg jwt.TokenConfig, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		tokenMgr: jwt.NewManager(tokenCfg),
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates a new account and returns its first token pair.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, *TokenPair, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, nil, fmt.Errorf("invalid email address")
	}
	if req.DisplayName == "" {
		return nil, nil, fmt.Errorf("display name required")
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	dbUser, err := s.users.Create(ctx, req.Email, passwordHash, req.DisplayName)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, nil, repository.ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	user := &User{ID: dbUser.ID, Email: dbUser.Email, DisplayName: dbUser.DisplayName}
	tokens, err := s.generateTokenPair(*user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, tokens, nil
}

// Login authenticates a user with email/password. Lookup and password
// failures collapse into one error so callers cannot probe for accounts.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, *TokenPair, error) {
	dbUser, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := VerifyPassword(dbUser.PasswordHash, req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user := &User{ID: dbUser.ID, Email: dbUser.Email, DisplayName: dbUser.DisplayName}
	_ = s.users.UpdateLastLogin(ctx, dbUser.ID)

	tokens, err := s.generateTokenPair(*user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return user, tokens, nil
}

// RefreshToken generates a new token pair from a refresh token.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMgr.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	dbUser, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	return s.generateTokenPair(User{ID: dbUser.ID, Email: dbUser.Email, DisplayName: dbUser.DisplayName})
}

// ValidateToken validates an access token and returns user claims.
func (s *Service) ValidateToken(tokenString string) (*jwt.Claims, error) {
	return s.tokenMgr.ValidateAccessToken(tokenString)
}

// GetUser fetches the account behind a set of claims.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &User{ID: dbUser.ID, Email: dbUser.Email, DisplayName: dbUser.DisplayName}, nil
}

func (s *Service) generateTokenPair(user User) (*TokenPair, error) {
	jwtUser := jwt.User{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName}

	accessToken, err := s.tokenMgr.GenerateAccessToken(jwtUser)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokenMgr.GenerateRefreshToken(jwtUser)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(1 * 3600),
	}, nil
}
