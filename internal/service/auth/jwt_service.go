package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Roles carried in access tokens.
const (
	RoleLearner = "learner"
	RoleAdmin   = "admin"
)

// JWTService defines operations for managing JWT authentication tokens.
// Identity is issued elsewhere; this service only signs and verifies the
// bearer tokens that carry it.
type JWTService interface {
	// GenerateToken creates a signed access token for userID with the given role.
	GenerateToken(ctx context.Context, userID uuid.UUID, role string) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid, ErrWrongTokenType or
	// ErrInvalidToken when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified content of an access token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Role is RoleLearner or RoleAdmin.
	Role string `json:"role,omitempty"`

	// TokenType is always "access" for tokens accepted by ValidateToken.
	TokenType string `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// IsAdmin reports whether the claims grant the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
