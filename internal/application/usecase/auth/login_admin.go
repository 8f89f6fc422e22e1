// Package auth contains authentication use cases.
package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/balance-board/backend/internal/application/adapter"
	domainerror "github.com/balance-board/backend/internal/domain/error"
)

// AdminCredentials is the single administrative principal, supplied from
// configuration. There is no user table.
type AdminCredentials struct {
	Email        string
	PasswordHash string
}

// LoginAdminInput represents the login request.
type LoginAdminInput struct {
	Email    string
	Password string
}

// LoginAdminOutput represents a successful login.
type LoginAdminOutput struct {
	AccessToken string
	ExpiresAt   time.Time
}

// LoginAdminUseCase validates admin credentials and issues an access token.
type LoginAdminUseCase struct {
	credentials     AdminCredentials
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginAdminUseCase creates a new LoginAdminUseCase instance.
func NewLoginAdminUseCase(
	credentials AdminCredentials,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginAdminUseCase {
	return &LoginAdminUseCase{
		credentials:     credentials,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the login.
func (uc *LoginAdminUseCase) Execute(ctx context.Context, input LoginAdminInput) (*LoginAdminOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	expected := strings.ToLower(uc.credentials.Email)

	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(expected)) == 1

	// Verify the password even on an email mismatch to keep timing uniform.
	passwordErr := uc.passwordService.VerifyPassword(uc.credentials.PasswordHash, input.Password)

	if !emailMatch || passwordErr != nil {
		return nil, domainerror.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokenService.GenerateAccessToken(ctx, email)
	if err != nil {
		return nil, err
	}

	return &LoginAdminOutput{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
