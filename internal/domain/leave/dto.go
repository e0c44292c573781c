package leave

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/ems-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	MaxDays      int     `json:"max_days"`
	IsPaid       bool    `json:"is_paid"`
	RequiresDocs bool    `json:"requires_docs"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.MaxDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "max_days", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLeaveRequestRequest struct {
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

type ParsedLeaveRequest struct {
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
}

func (r *CreateLeaveRequestRequest) Validate() (ParsedLeaveRequest, error) {
	var errs validator.ValidationErrors
	parsed := ParsedLeaveRequest{
		LeaveTypeID: r.LeaveTypeID,
		Reason:      r.Reason,
	}

	if !validator.IsValidUUID(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "must be a valid UUID"})
	}
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	} else {
		parsed.StartDate = start
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	} else {
		parsed.EndDate = end
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return ParsedLeaveRequest{}, errs
	}
	if parsed.StartDate.After(parsed.EndDate) {
		return ParsedLeaveRequest{}, ErrInvalidDateRange
	}
	return parsed, nil
}

type UpdateLeaveRequestRequest struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

type ParsedLeaveUpdate struct {
	StartDate *time.Time
	EndDate   *time.Time
	Reason    *string
}

func (r *UpdateLeaveRequestRequest) Validate() (ParsedLeaveUpdate, error) {
	var errs validator.ValidationErrors
	parsed := ParsedLeaveUpdate{Reason: r.Reason}

	// Dates move together so total days can be recalculated.
	if (r.StartDate == nil) != (r.EndDate == nil) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date and end_date must be provided together"})
	}
	if r.StartDate != nil {
		start, ok := validator.IsValidDate(*r.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		} else {
			parsed.StartDate = &start
		}
	}
	if r.EndDate != nil {
		end, ok := validator.IsValidDate(*r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		} else {
			parsed.EndDate = &end
		}
	}
	if r.StartDate == nil && r.EndDate == nil && r.Reason == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field is required"})
	}

	if len(errs) > 0 {
		return ParsedLeaveUpdate{}, errs
	}
	if parsed.StartDate != nil && parsed.StartDate.After(*parsed.EndDate) {
		return ParsedLeaveUpdate{}, ErrInvalidDateRange
	}
	return parsed, nil
}

type SetCreditsRequest struct {
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	Year        int             `json:"year"`
	TotalDays   decimal.Decimal `json:"total_days"`
}

func (r *SetCreditsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if !validator.IsValidUUID(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "must be a valid UUID"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if r.TotalDays.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_days", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewLeaveRequestRequest struct {
	Status      string  `json:"status"`
	ReviewNotes *string `json:"review_notes,omitempty"`
}

func (r *ReviewLeaveRequestRequest) Validate() error {
	if r.Status != string(RequestStatusApproved) && r.Status != string(RequestStatusDeclined) {
		return validator.ValidationErrors{{Field: "status", Message: "must be approved or declined"}}
	}
	return nil
}

type ListLeaveRequestsFilter struct {
	EmployeeID string
	Status     string
	Page       int
	Limit      int
}

type LeaveTypeResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	MaxDays      int     `json:"max_days"`
	IsPaid       bool    `json:"is_paid"`
	RequiresDocs bool    `json:"requires_docs"`
}

type LeaveCreditResponse struct {
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName string          `json:"leave_type_name"`
	Year          int             `json:"year"`
	TotalDays     decimal.Decimal `json:"total_days"`
	UsedDays      decimal.Decimal `json:"used_days"`
	RemainingDays decimal.Decimal `json:"remaining_days"`
}

type LeaveRequestResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	TotalDays   decimal.Decimal `json:"total_days"`
	Reason      string          `json:"reason"`
	Status      string          `json:"status"`
	ReviewedBy  *string         `json:"reviewed_by,omitempty"`
	ReviewedAt  *string         `json:"reviewed_at,omitempty"`
	ReviewNotes *string         `json:"review_notes,omitempty"`
}

type ListLeaveRequestsResponse struct {
	Data       []LeaveRequestResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}
