package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/api/shared"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/mocks"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/auth"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	testCases := []struct {
		name        string
		authHeader  string
		claims      *auth.Claims
		validateErr error
		ensureErr   error
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			claims:     &auth.Claims{UserID: userID, Role: auth.RoleLearner},
			wantStatus: http.StatusOK,
		},
		{
			name:       "lowercase scheme",
			authHeader: "bearer valid-token",
			claims:     &auth.Claims{UserID: userID, Role: auth.RoleLearner},
			wantStatus: http.StatusOK,
		},
		{
			name:        "missing header",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authorization header required",
		},
		{
			name:        "wrong scheme",
			authHeader:  "Basic dXNlcjpwYXNz",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization format",
		},
		{
			name:        "no token",
			authHeader:  "Bearer ",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization format",
		},
		{
			name:        "expired",
			authHeader:  "Bearer expired",
			validateErr: auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token expired",
		},
		{
			name:        "invalid",
			authHeader:  "Bearer forged",
			validateErr: auth.ErrInvalidToken,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:        "wrong token type",
			authHeader:  "Bearer refresh",
			validateErr: auth.ErrWrongTokenType,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:        "unexpected validation failure",
			authHeader:  "Bearer valid-token",
			validateErr: errors.New("keyring unavailable"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Authentication error",
		},
		{
			name:        "user bootstrap fails",
			authHeader:  "Bearer valid-token",
			claims:      &auth.Claims{UserID: userID, Role: auth.RoleLearner},
			ensureErr:   errors.New("db down"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Authentication error",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{Claims: tc.claims, ValidateErr: tc.validateErr}
			users := &mocks.MockUserService{}
			if tc.claims != nil && tc.validateErr == nil {
				users.On("EnsureUser", mock.Anything, userID).Return(&domain.User{ID: userID}, tc.ensureErr)
			}

			var gotUserID uuid.UUID
			var gotRole string
			var hadLogger bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = shared.UserIDFromContext(r.Context())
				gotRole = shared.RoleFromContext(r.Context())
				hadLogger = logger.FromContextOrDefault(r.Context(), nil) != nil
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/home/stats", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			NewAuthMiddleware(jwtService, users).Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			users.AssertExpectations(t)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, userID, gotUserID)
				assert.Equal(t, auth.RoleLearner, gotRole)
				assert.True(t, hadLogger)
				return
			}
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMessage, body.Error)
			assert.Equal(t, uuid.Nil, gotUserID, "next handler must not run")
		})
	}
}

func TestAuthMiddleware_WithoutUserEnsurer(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtService := &mocks.MockJWTService{Claims: &auth.Claims{UserID: userID, Role: auth.RoleAdmin}}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer ok")

	NewAuthMiddleware(jwtService, nil).Authenticate(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, called)
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		userID     uuid.UUID
		role       string
		wantStatus int
	}{
		{name: "admin", userID: uuid.New(), role: auth.RoleAdmin, wantStatus: http.StatusOK},
		{name: "learner", userID: uuid.New(), role: auth.RoleLearner, wantStatus: http.StatusForbidden},
		{name: "unauthenticated", wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/admin/reset-progress", nil)
			if tc.userID != uuid.Nil {
				req = req.WithContext(shared.WithIdentity(req.Context(), tc.userID, tc.role))
			}
			rr := httptest.NewRecorder()

			RequireAdmin(next).ServeHTTP(rr, req)
			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}
