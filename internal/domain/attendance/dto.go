package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/ems-backend-go/internal/pkg/validator"
)

type TimeInRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type TimeOutRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type UpdateAttendanceRequest struct {
	TimeIn  *string `json:"time_in,omitempty"`
	TimeOut *string `json:"time_out,omitempty"`
	Status  *string `json:"status,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type ParsedAttendanceUpdate struct {
	TimeIn  *time.Time
	TimeOut *time.Time
	Status  *Status
	Notes   *string
}

func (r *UpdateAttendanceRequest) Validate() (ParsedAttendanceUpdate, error) {
	var errs validator.ValidationErrors
	parsed := ParsedAttendanceUpdate{Notes: r.Notes}

	if r.TimeIn != nil {
		t, err := time.Parse(time.RFC3339, *r.TimeIn)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "time_in", Message: "must be an RFC3339 timestamp"})
		} else {
			parsed.TimeIn = &t
		}
	}
	if r.TimeOut != nil {
		t, err := time.Parse(time.RFC3339, *r.TimeOut)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "time_out", Message: "must be an RFC3339 timestamp"})
		} else {
			parsed.TimeOut = &t
		}
	}
	if r.Status != nil {
		status := Status(*r.Status)
		if !IsValidStatus(status) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be present, late, absent, half_day or on_leave"})
		} else {
			parsed.Status = &status
		}
	}
	if r.TimeIn == nil && r.TimeOut == nil && r.Status == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field is required"})
	}

	if len(errs) > 0 {
		return ParsedAttendanceUpdate{}, errs
	}
	return parsed, nil
}

type ListAttendanceFilter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     string
	Page       int
	Limit      int
}

type ListAttendanceQuery struct {
	EmployeeID string
	StartDate  string
	EndDate    string
	Status     string
	Page       int
	Limit      int
}

func (q *ListAttendanceQuery) Validate() (ListAttendanceFilter, error) {
	var errs validator.ValidationErrors
	filter := ListAttendanceFilter{
		EmployeeID: q.EmployeeID,
		Status:     q.Status,
		Page:       q.Page,
		Limit:      q.Limit,
	}

	if q.EmployeeID != "" && !validator.IsValidUUID(q.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if q.StartDate != "" {
		start, ok := validator.IsValidDate(q.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		} else {
			filter.StartDate = &start
		}
	}
	if q.EndDate != "" {
		end, ok := validator.IsValidDate(q.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		} else {
			filter.EndDate = &end
		}
	}
	if q.Status != "" && !IsValidStatus(Status(q.Status)) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be present, late, absent, half_day or on_leave"})
	}

	if len(errs) > 0 {
		return ListAttendanceFilter{}, errs
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return ListAttendanceFilter{}, ErrInvalidDateRange
	}
	return filter, nil
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Date          string          `json:"date"`
	TimeIn        *string         `json:"time_in,omitempty"`
	TimeOut       *string         `json:"time_out,omitempty"`
	Status        string          `json:"status"`
	LateMinutes   int             `json:"late_minutes"`
	HoursWorked   decimal.Decimal `json:"hours_worked"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Notes         *string         `json:"notes,omitempty"`
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

type MonthlyReportSummary struct {
	TotalDays          int             `json:"total_days"`
	PresentDays        int             `json:"present_days"`
	LateDays           int             `json:"late_days"`
	AbsentDays         int             `json:"absent_days"`
	HalfDays           int             `json:"half_days"`
	TotalHours         decimal.Decimal `json:"total_hours"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
	TotalLateMinutes   int             `json:"total_late_minutes"`
}

type MonthlyReportResponse struct {
	EmployeeID string               `json:"employee_id"`
	Month      int                  `json:"month"`
	Year       int                  `json:"year"`
	Records    []AttendanceResponse `json:"records"`
	Summary    MonthlyReportSummary `json:"summary"`
}
