package activity

import "time"

// Entry is a single audit-trail row. Writes are best effort: a failed
// insert is logged and never fails the operation that produced it.
type Entry struct {
	ID         string
	EmployeeID *string
	Action     string
	EntityType string
	EntityID   *string
	Details    map[string]any
	IPAddress  *string
	UserAgent  *string
	CreatedAt  time.Time
}

const (
	ActionLogin             = "login"
	ActionLogout            = "logout"
	ActionEmployeeCreated   = "employee_created"
	ActionEmployeeUpdated   = "employee_updated"
	ActionEmployeeDeleted   = "employee_deleted"
	ActionStatusChanged     = "employee_status_changed"
	ActionTimeIn            = "time_in"
	ActionTimeOut           = "time_out"
	ActionAttendanceUpdated = "attendance_updated"
	ActionAttendanceDeleted = "attendance_deleted"
	ActionLeaveRequested    = "leave_requested"
	ActionLeaveUpdated      = "leave_request_updated"
	ActionLeaveReviewed     = "leave_reviewed"
	ActionLeaveCancelled    = "leave_cancelled"
	ActionPayrollGenerated  = "payroll_generated"
	ActionPayrollStatus     = "payroll_status_changed"
	ActionRuleCreated       = "compensation_rule_created"
	ActionRuleUpdated       = "compensation_rule_updated"
	ActionRuleDeleted       = "compensation_rule_deleted"
)
