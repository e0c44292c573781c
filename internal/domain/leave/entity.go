package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeaveType struct {
	ID           string
	Name         string
	Description  *string
	MaxDays      int
	IsPaid       bool
	RequiresDocs bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LeaveCredit tracks an employee's annual balance for one leave type.
type LeaveCredit struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int
	TotalDays   decimal.Decimal
	UsedDays    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c LeaveCredit) RemainingDays() decimal.Decimal {
	return c.TotalDays.Sub(c.UsedDays)
}

type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	TotalDays   decimal.Decimal
	Reason      string
	Status      RequestStatus
	ReviewedBy  *string
	ReviewedAt  *time.Time
	ReviewNotes *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusDeclined  RequestStatus = "declined"
	RequestStatusCancelled RequestStatus = "cancelled"
)

func IsValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusDeclined, RequestStatusCancelled:
		return true
	}
	return false
}

// WorkingDaysBetween counts weekdays in [start, end] inclusive. Leave
// spanning a weekend only consumes credits for the weekdays.
func WorkingDaysBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
