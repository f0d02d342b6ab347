package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/config"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func newTestService(t *testing.T, now func() time.Time) JWTService {
	t.Helper()
	svc, err := NewJWTServiceWithClock(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	}, now)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RejectsWeakConfig(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, func() time.Time { return fixedTime })
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID, RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.True(t, claims.IsAdmin())
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	_, err = svc.GenerateToken(context.Background(), userID, "root")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	issuer := newTestService(t, func() time.Time { return fixedTime })

	valid, err := issuer.GenerateToken(context.Background(), userID, RoleLearner)
	require.NoError(t, err)

	wrongType := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{
		UserID:    userID,
		Role:      RoleLearner,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	})
	wrongTypeToken, err := wrongType.SignedString([]byte(testSecret))
	require.NoError(t, err)

	otherSigner, err := NewJWTServiceWithClock(config.AuthConfig{
		JWTSecret:            "another-secret-that-is-long-enough-too",
		TokenLifetimeMinutes: 60,
	}, func() time.Time { return fixedTime })
	require.NoError(t, err)
	foreign, err := otherSigner.GenerateToken(context.Background(), userID, RoleLearner)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "valid", token: valid, now: fixedTime.Add(30 * time.Minute)},
		{name: "within clock skew", token: valid, now: fixedTime.Add(61 * time.Minute)},
		{name: "expired", token: valid, now: fixedTime.Add(2 * time.Hour), wantErr: ErrExpiredToken},
		{name: "wrong signature", token: foreign, now: fixedTime, wantErr: ErrInvalidToken},
		{name: "malformed", token: "not.a.jwt", now: fixedTime, wantErr: ErrInvalidToken},
		{name: "empty", token: "", now: fixedTime, wantErr: ErrMissingToken},
		{name: "wrong type", token: wrongTypeToken, now: fixedTime, wantErr: ErrWrongTokenType},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(t, func() time.Time { return tc.now })
			claims, err := svc.ValidateToken(context.Background(), tc.token)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
			assert.False(t, claims.IsAdmin())
		})
	}
}
