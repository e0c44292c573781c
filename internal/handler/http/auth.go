package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/workforcehq/ems-backend-go/internal/domain/auth"
	"github.com/workforcehq/ems-backend-go/internal/handler/http/response"
	"github.com/workforcehq/ems-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &authHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

func sessionFromRequest(r *http.Request) auth.SessionInfo {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	}
	return auth.SessionInfo{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}

// Login implements AuthHandler.
func (a *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	loginResp, refreshToken, refreshExpiresAt, err := a.authService.Login(r.Context(), loginReq, sessionFromRequest(r))
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(refreshToken, refreshExpiresAt)
	http.SetCookie(w, refreshTokenCookie)
	slog.Info("Employee logged in successfully")
	response.SuccessWithMessage(w, "Logged in successfully", loginResp)
}

// RefreshToken implements AuthHandler.
func (a *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshTokenCookie, err := r.Cookie("refresh_token")
	if err != nil || refreshTokenCookie.Value == "" {
		response.HandleError(w, auth.ErrMissingRefreshCookie)
		return
	}

	refreshResp, err := a.authService.Refresh(r.Context(), refreshTokenCookie.Value)
	if err != nil {
		slog.Error("Refresh token service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Token refreshed successfully", refreshResp)
}

// Logout implements AuthHandler.
func (a *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		refreshToken = cookie.Value
	}

	if err := a.authService.Logout(r.Context(), refreshToken, sessionFromRequest(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	// Clear the refresh token cookie
	clearedCookie := &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(w, clearedCookie)
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// Me implements AuthHandler.
func (a *authHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	meResp, err := a.authService.Me(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, meResp.Employee)
}

// ChangePassword implements AuthHandler.
func (a *authHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var changePasswordReq auth.ChangePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&changePasswordReq); err != nil {
		slog.Error("ChangePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := a.authService.ChangePassword(r.Context(), changePasswordReq); err != nil {
		slog.Error("ChangePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}
