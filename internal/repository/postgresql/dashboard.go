package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/workforcehq/ems-backend-go/internal/domain/dashboard"
	"github.com/workforcehq/ems-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetAdminStats(ctx context.Context, today time.Time) (dashboard.AdminStats, error) {
	q := GetQuerier(ctx, r.db)

	stats := dashboard.AdminStats{
		DepartmentHeadcount: make(map[string]int64),
		MonthlyPayrollTotal: decimal.Zero,
	}

	employeeQuery := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE employment_status = 'active')
		FROM employees
		WHERE deleted_at IS NULL
	`
	if err := q.QueryRow(ctx, employeeQuery).Scan(&stats.TotalEmployees, &stats.ActiveEmployees); err != nil {
		return dashboard.AdminStats{}, fmt.Errorf("failed to count employees: %w", err)
	}

	attendanceQuery := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('present', 'late')),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'on_leave')
		FROM attendances
		WHERE date = $1
	`
	if err := q.QueryRow(ctx, attendanceQuery, today).Scan(
		&stats.PresentToday, &stats.LateToday, &stats.AbsentToday, &stats.OnLeaveToday,
	); err != nil {
		return dashboard.AdminStats{}, fmt.Errorf("failed to count today's attendance: %w", err)
	}

	leaveQuery := `SELECT COUNT(*) FROM leave_requests WHERE status = 'pending'`
	if err := q.QueryRow(ctx, leaveQuery).Scan(&stats.PendingLeaveCount); err != nil {
		return dashboard.AdminStats{}, fmt.Errorf("failed to count pending leave requests: %w", err)
	}

	deptQuery := `
		SELECT department, COUNT(*)
		FROM employees
		WHERE deleted_at IS NULL AND employment_status = 'active' AND department IS NOT NULL
		GROUP BY department
	`
	rows, err := q.Query(ctx, deptQuery)
	if err != nil {
		return dashboard.AdminStats{}, fmt.Errorf("failed to count department headcount: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var dept string
		var count int64
		if err := rows.Scan(&dept, &count); err != nil {
			return dashboard.AdminStats{}, fmt.Errorf("failed to scan department headcount: %w", err)
		}
		stats.DepartmentHeadcount[dept] = count
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	payrollQuery := `
		SELECT COALESCE(SUM(net_pay), 0)
		FROM payroll_records
		WHERE period_start BETWEEN $1 AND $2 AND status = 'approved'
	`
	if err := q.QueryRow(ctx, payrollQuery, monthStart, monthEnd).Scan(&stats.MonthlyPayrollTotal); err != nil {
		return dashboard.AdminStats{}, fmt.Errorf("failed to sum monthly payroll: %w", err)
	}

	trendQuery := `
		SELECT date,
		       COUNT(*) FILTER (WHERE status IN ('present', 'late')),
		       COUNT(*) FILTER (WHERE status = 'absent'),
		       COUNT(*) FILTER (WHERE status = 'on_leave')
		FROM attendances
		WHERE date BETWEEN $1 AND $2
		GROUP BY date
		ORDER BY date ASC
	`
	trendRows, err := q.Query(ctx, trendQuery, today.AddDate(0, 0, -6), today)
	if err != nil {
		return dashboard.AdminStats{}, fmt.Errorf("failed to query attendance trend: %w", err)
	}
	defer trendRows.Close()
	for trendRows.Next() {
		var day time.Time
		point := dashboard.AttendanceTrendPoint{}
		if err := trendRows.Scan(&day, &point.Present, &point.Absent, &point.OnLeave); err != nil {
			return dashboard.AdminStats{}, fmt.Errorf("failed to scan attendance trend: %w", err)
		}
		point.Date = day.Format("2006-01-02")
		stats.AttendanceTrend = append(stats.AttendanceTrend, point)
	}

	return stats, nil
}

func (r *dashboardRepository) GetEmployeeStats(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) (dashboard.EmployeeStats, error) {
	q := GetQuerier(ctx, r.db)

	var stats dashboard.EmployeeStats

	attendanceQuery := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('present', 'late')),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COALESCE(SUM(hours_worked), 0),
			COALESCE(SUM(overtime_hours), 0)
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`
	if err := q.QueryRow(ctx, attendanceQuery, employeeID, monthStart, monthEnd).Scan(
		&stats.PresentDaysThisMonth, &stats.LateDaysThisMonth, &stats.AbsentDaysThisMonth,
		&stats.HoursThisMonth, &stats.OvertimeThisMonth,
	); err != nil {
		return dashboard.EmployeeStats{}, fmt.Errorf("failed to aggregate monthly attendance: %w", err)
	}

	leaveQuery := `SELECT COUNT(*) FROM leave_requests WHERE employee_id = $1 AND status = 'pending'`
	if err := q.QueryRow(ctx, leaveQuery, employeeID).Scan(&stats.PendingLeaveCount); err != nil {
		return dashboard.EmployeeStats{}, fmt.Errorf("failed to count pending leave requests: %w", err)
	}

	creditQuery := `
		SELECT COALESCE(SUM(total_days - used_days), 0)
		FROM leave_credits
		WHERE employee_id = $1 AND year = $2
	`
	if err := q.QueryRow(ctx, creditQuery, employeeID, monthStart.Year()).Scan(&stats.RemainingLeaveDays); err != nil {
		return dashboard.EmployeeStats{}, fmt.Errorf("failed to sum leave credits: %w", err)
	}

	payQuery := `
		SELECT net_pay
		FROM payroll_records
		WHERE employee_id = $1
		ORDER BY period_end DESC
		LIMIT 1
	`
	var lastNet decimal.Decimal
	err := q.QueryRow(ctx, payQuery, employeeID).Scan(&lastNet)
	switch {
	case err == pgx.ErrNoRows:
		// No payroll yet; leave LastNetPay nil.
	case err != nil:
		return dashboard.EmployeeStats{}, fmt.Errorf("failed to get last net pay: %w", err)
	default:
		stats.LastNetPay = &lastNet
	}

	return stats, nil
}
