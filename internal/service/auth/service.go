package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/workforcehq/ems-backend-go/internal/domain/activity"
	"github.com/workforcehq/ems-backend-go/internal/domain/auth"
	"github.com/workforcehq/ems-backend-go/internal/domain/employee"
	"github.com/workforcehq/ems-backend-go/internal/pkg/jwt"
	employeesvc "github.com/workforcehq/ems-backend-go/internal/service/employee"
)

type AuthServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	activityRepo activity.Repository
	jwtService   jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, activityRepo activity.Repository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		employeeRepo: employeeRepo,
		activityRepo: activityRepo,
		jwtService:   jwtService,
	}
}

func (s *AuthServiceImpl) logActivity(ctx context.Context, entry activity.Entry) {
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		slog.Error("failed to write activity log", "action", entry.Action, "error", err)
	}
}

func sessionFields(session auth.SessionInfo) (ip, ua *string) {
	if session.IPAddress != "" {
		ip = &session.IPAddress
	}
	if session.UserAgent != "" {
		ua = &session.UserAgent
	}
	return ip, ua
}

func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionInfo) (auth.LoginResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, "", 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	if emp.EmploymentStatus != employee.EmploymentStatusActive {
		return auth.LoginResponse{}, "", 0, auth.ErrAccountInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	ip, ua := sessionFields(session)
	s.logActivity(ctx, activity.Entry{
		EmployeeID: &emp.ID,
		Action:     activity.ActionLogin,
		EntityType: "auth",
		IPAddress:  ip,
		UserAgent:  ua,
	})

	resp := auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Employee:    employeesvc.ToResponse(emp),
	}

	return resp, refreshToken, refreshExpiresAt, nil
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	employeeID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidRefreshToken
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidRefreshToken
	}

	if emp.EmploymentStatus != employee.EmploymentStatusActive {
		return auth.RefreshResponse{}, auth.ErrAccountInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.RefreshResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string, session auth.SessionInfo) error {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err == nil {
		if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
			ip, ua := sessionFields(session)
			s.logActivity(ctx, activity.Entry{
				EmployeeID: &employeeID,
				Action:     activity.ActionLogout,
				EntityType: "auth",
				IPAddress:  ip,
				UserAgent:  ua,
			})
		}
	}

	return nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return fmt.Errorf("employee_id claim is missing or invalid")
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	hashedStr := string(hashedPassword)
	return s.employeeRepo.Update(ctx, employee.UpdateEmployeeRequest{
		ID:           employeeID,
		PasswordHash: &hashedStr,
	})
}

func (s *AuthServiceImpl) Me(ctx context.Context) (auth.LoginResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return auth.LoginResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{Employee: employeesvc.ToResponse(emp)}, nil
}
