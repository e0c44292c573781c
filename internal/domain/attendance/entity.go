package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	TimeIn        *time.Time
	TimeOut       *time.Time
	Status        Status
	LateMinutes   int
	HoursWorked   decimal.Decimal
	OvertimeHours decimal.Decimal
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusOnLeave Status = "on_leave"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusHalfDay, StatusOnLeave:
		return true
	}
	return false
}

// Aggregate summarizes an employee's attendance over a period. It feeds
// the payroll calculation.
type Aggregate struct {
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	LateMinutes   int
	PresentDays   int
	AbsentDays    int
	HalfDays      int
	LeaveDays     int
}
