package auth

import "context"

// AuthService defines authentication business logic.
type AuthService interface {
	// Login verifies credentials and issues access + refresh tokens.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
