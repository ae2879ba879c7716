package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/devanshsoni09/prep-platform/internal/auth/jwt"
	httperrors "github.com/devanshsoni09/prep-platform/pkg/http/errors"
)

// ClaimsIntoContext attaches validated claims to the request context.
func ClaimsIntoContext(ctx context.Context, claims *jwt.Claims) context.Context {
	return jwt.ClaimsIntoContext(ctx, claims)
}

// ClaimsFromContext retrieves claims set by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	return jwt.ClaimsFromContext(ctx)
}

// UserIDFromContext retrieves the authenticated user's ID, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	return jwt.UserIDFromContext(ctx)
}

// Middleware validates bearer tokens and injects claims into the request
// context. Requests without an Authorization header pass through
// unauthenticated; RequireAuth gates the protected routes.
func Middleware(authSvc *Service, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid authorization header")
				return
			}

			claims, err := authSvc.ValidateToken(parts[1])
			if err != nil {
				logger.Warn().Err(err).Msg("token validation failed")
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ClaimsIntoContext(r.Context(), claims)))
		})
	}
}

// RequireAuth ensures the request is authenticated.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
