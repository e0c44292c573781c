package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/workforcehq/ems-backend-go/internal/handler/http/middleware"
	"github.com/workforcehq/ems-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	FrontendURL string
	Env         string
}

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
	Activity   ActivityHandler
}

func NewRouter(jwtService jwt.Service, cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ems-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Get("/me", h.Auth.Me)
				r.Post("/change-password", h.Auth.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", h.Employee.Get)

				// HR or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Patch("/{id}/status", h.Employee.ChangeStatus)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/time-in", h.Attendance.TimeIn)
				r.Post("/time-out", h.Attendance.TimeOut)
				r.Get("/today", h.Attendance.GetToday)
				r.Get("/", h.Attendance.List)
				r.Get("/report/{employeeId}", h.Attendance.GetMonthlyReport)

				// HR or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Put("/{id}", h.Attendance.Update)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Route("/types", func(r chi.Router) {
					r.Get("/", h.Leave.ListLeaveTypes)

					// HR or admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Post("/", h.Leave.CreateLeaveType)
						r.Delete("/{id}", h.Leave.DeleteLeaveType)
					})
				})

				r.Route("/credits", func(r chi.Router) {
					r.Get("/my", h.Leave.GetMyCredits)

					// HR or admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Put("/", h.Leave.SetCredits)
					})
				})

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", h.Leave.RequestLeave)
					r.Get("/", h.Leave.ListRequests)
					r.Put("/{id}", h.Leave.UpdateRequest)
					r.Post("/{id}/cancel", h.Leave.CancelRequest)

					// HR or admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Post("/{id}/review", h.Leave.ReviewRequest)
					})
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/records", func(r chi.Router) {
					r.Get("/my", h.Payroll.ListMyRecords)
					r.Get("/{id}", h.Payroll.GetRecord)

					// HR or admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Post("/generate", h.Payroll.Generate)
						r.Get("/", h.Payroll.ListRecords)
						r.Patch("/{id}/status", h.Payroll.UpdateRecordStatus)
						r.Delete("/{id}", h.Payroll.DeleteRecord)
					})
				})

				// HR or admin only
				r.Route("/rules", func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", h.Payroll.ListRules)
					r.Post("/", h.Payroll.CreateRule)
					r.Put("/{id}", h.Payroll.UpdateRule)
					r.Delete("/{id}", h.Payroll.DeleteRule)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/my", h.Dashboard.GetMyStats)

				// HR or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/admin", h.Dashboard.GetAdminStats)
				})
			})

			// Admin only
			r.Route("/activity-logs", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.Activity.List)
			})
		})
	})
	return r
}
