package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workforcehq/ems-backend-go/internal/domain/auth"
	"github.com/workforcehq/ems-backend-go/internal/domain/employee"
	"github.com/workforcehq/ems-backend-go/internal/handler/http/response"
)

// RequireAdmin requires admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrAdminAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, auth.ErrAdminAccessRequired)
			return
		}

		if role != string(employee.RoleAdmin) {
			response.HandleError(w, auth.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireHR requires hr or admin role
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrHRAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, auth.ErrHRAccessRequired)
			return
		}

		role := employee.Role(roleStr)
		if role != employee.RoleHR && role != employee.RoleAdmin {
			response.HandleError(w, auth.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
