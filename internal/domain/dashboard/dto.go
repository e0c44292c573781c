package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/workforcehq/ems-backend-go/internal/domain/activity"
)

// AttendanceTrendPoint is one day of the attendance chart.
type AttendanceTrendPoint struct {
	Date    string `json:"date"`
	Present int64  `json:"present"`
	Absent  int64  `json:"absent"`
	OnLeave int64  `json:"on_leave"`
}

// AdminStats backs the admin/HR dashboard. MonthlyPayrollTotal sums
// approved records whose period starts in the current month.
type AdminStats struct {
	TotalEmployees      int64                    `json:"total_employees"`
	ActiveEmployees     int64                    `json:"active_employees"`
	PresentToday        int64                    `json:"present_today"`
	LateToday           int64                    `json:"late_today"`
	AbsentToday         int64                    `json:"absent_today"`
	OnLeaveToday        int64                    `json:"on_leave_today"`
	PendingLeaveCount   int64                    `json:"pending_leave_count"`
	DepartmentHeadcount map[string]int64         `json:"department_headcount"`
	MonthlyPayrollTotal decimal.Decimal          `json:"monthly_payroll_total"`
	AttendanceTrend     []AttendanceTrendPoint   `json:"attendance_trend"`
	RecentActivities    []activity.EntryResponse `json:"recent_activities"`
}

// EmployeeStats backs the personal dashboard.
type EmployeeStats struct {
	PresentDaysThisMonth int64            `json:"present_days_this_month"`
	LateDaysThisMonth    int64            `json:"late_days_this_month"`
	AbsentDaysThisMonth  int64            `json:"absent_days_this_month"`
	HoursThisMonth       decimal.Decimal  `json:"hours_this_month"`
	OvertimeThisMonth    decimal.Decimal  `json:"overtime_this_month"`
	PendingLeaveCount    int64            `json:"pending_leave_count"`
	RemainingLeaveDays   decimal.Decimal  `json:"remaining_leave_days"`
	LastNetPay           *decimal.Decimal `json:"last_net_pay,omitempty"`
}
