package auth

import "context"

type AuthService interface {
	// Login returns the access token payload plus the refresh token and its
	// expiry, which the handler sets as an HTTP-only cookie.
	Login(ctx context.Context, req LoginRequest, session SessionInfo) (LoginResponse, string, int64, error)
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string, session SessionInfo) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	Me(ctx context.Context) (LoginResponse, error)
}
