// Package error defines domain-specific errors for the Balance Board application.
package error

import "errors"

// Auth domain errors.
var (
	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingToken is returned when no access token was provided.
	ErrMissingToken = errors.New("access token is required")

	// ErrInvalidToken is returned when the access token is malformed or expired.
	ErrInvalidToken = errors.New("invalid or expired access token")
)

// AuthErrorCode defines error codes for auth errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-010001"

	// Token errors (02XXXX)
	ErrCodeMissingToken AuthErrorCode = "AUTH-020001"
	ErrCodeInvalidToken AuthErrorCode = "AUTH-020002"

	// Rate limiting (03XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-030001"
)
