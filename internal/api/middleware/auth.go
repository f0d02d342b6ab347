package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/api/shared"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/auth"
)

// UserEnsurer creates the learner row for a verified identity on first use.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// AuthMiddleware authenticates bearer tokens.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      UserEnsurer
}

// NewAuthMiddleware creates an AuthMiddleware. users may be nil, in which
// case no user row is bootstrapped.
func NewAuthMiddleware(jwtService auth.JWTService, users UserEnsurer) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate validates the bearer token and stores the caller's identity
// in the request context. The request logger gains a user_id attribute.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err,
					shared.WithElevatedLogLevel())
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err,
					shared.WithElevatedLogLevel())
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			}
			return
		}

		if m.users != nil {
			if _, err := m.users.EnsureUser(r.Context(), claims.UserID); err != nil {
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
				return
			}
		}

		ctx := shared.WithIdentity(r.Context(), claims.UserID, claims.Role)
		log := logger.FromContext(ctx).With(slog.String("user_id", claims.UserID.String()))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects callers whose token does not carry the admin role.
// It must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := shared.UserIDFromContext(r.Context()); !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		if shared.RoleFromContext(r.Context()) != auth.RoleAdmin {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Admin role required", nil,
				shared.WithElevatedLogLevel())
			return
		}
		next.ServeHTTP(w, r)
	})
}
