package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workforcehq/ems-backend-go/internal/config"
	payrollDomain "github.com/workforcehq/ems-backend-go/internal/domain/payroll"
	appHTTP "github.com/workforcehq/ems-backend-go/internal/handler/http"
	"github.com/workforcehq/ems-backend-go/internal/pkg/cron"
	"github.com/workforcehq/ems-backend-go/internal/pkg/database"
	"github.com/workforcehq/ems-backend-go/internal/pkg/jwt"
	"github.com/workforcehq/ems-backend-go/internal/repository/postgresql"
	activityService "github.com/workforcehq/ems-backend-go/internal/service/activity"
	attendanceService "github.com/workforcehq/ems-backend-go/internal/service/attendance"
	authService "github.com/workforcehq/ems-backend-go/internal/service/auth"
	dashboardService "github.com/workforcehq/ems-backend-go/internal/service/dashboard"
	employeeService "github.com/workforcehq/ems-backend-go/internal/service/employee"
	leaveService "github.com/workforcehq/ems-backend-go/internal/service/leave"
	payrollService "github.com/workforcehq/ems-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveCreditRepo := postgresql.NewLeaveCreditRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	ruleRepo := postgresql.NewRuleRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	payrollCfg := payrollDomain.DefaultConfig()

	authSvc := authService.NewAuthService(employeeRepo, activityRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, activityRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, activityRepo, payrollCfg)
	leaveSvc := leaveService.NewLeaveService(txManager, leaveTypeRepo, leaveCreditRepo, leaveRequestRepo, attendanceRepo, activityRepo)
	payrollSvc := payrollService.NewPayrollService(txManager, payrollRepo, ruleRepo, employeeRepo, attendanceRepo, activityRepo, payrollCfg)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, activityRepo)
	activitySvc := activityService.NewActivityService(activityRepo)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Activity:   appHTTP.NewActivityHandler(activitySvc),
	}

	router := appHTTP.NewRouter(jwtService, appHTTP.RouterConfig{
		FrontendURL: cfg.App.FrontendURL,
		Env:         cfg.App.Env,
	}, handlers)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server running", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
