package auth

import "errors"

// Token errors. The middleware maps ErrExpiredToken to "Token expired" and the
// rest to "Invalid token".
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")

	// ErrWrongTokenType is returned for a well-signed token whose type claim is
	// not "access".
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidRole is returned by GenerateToken for a role other than
	// RoleLearner or RoleAdmin.
	ErrInvalidRole = errors.New("invalid role")
)
