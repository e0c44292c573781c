package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountInactive      = errors.New("account is not active")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrRefreshTokenRevoked  = errors.New("refresh token has been revoked")
	ErrPasswordMismatch     = errors.New("current password is incorrect")
	ErrMissingRefreshCookie = errors.New("refresh token cookie not found")
	ErrInvalidToken         = errors.New("invalid or missing access token")
	ErrAdminAccessRequired  = errors.New("admin access required")
	ErrHRAccessRequired     = errors.New("hr or admin access required")
)
