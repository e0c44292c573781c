package response

import (
	"errors"
	"net/http"

	"github.com/workforcehq/ems-backend-go/internal/domain/attendance"
	"github.com/workforcehq/ems-backend-go/internal/domain/auth"
	"github.com/workforcehq/ems-backend-go/internal/domain/employee"
	"github.com/workforcehq/ems-backend-go/internal/domain/leave"
	"github.com/workforcehq/ems-backend-go/internal/domain/payroll"
	"github.com/workforcehq/ems-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrMissingRefreshCookie),
		errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive),
		errors.Is(err, auth.ErrAdminAccessRequired),
		errors.Is(err, auth.ErrHRAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrPasswordMismatch):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrInvalidRole),
		errors.Is(err, employee.ErrInvalidStatus),
		errors.Is(err, employee.ErrNoFieldsToUpdate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyTimedIn),
		errors.Is(err, attendance.ErrAlreadyTimedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotTimedIn),
		errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound),
		errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, leave.ErrLeaveCreditNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrLeaveTypeNameExists),
		errors.Is(err, leave.ErrOverlappingRequest),
		errors.Is(err, leave.ErrRequestNotPending),
		errors.Is(err, leave.ErrCannotCancelReviewed):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInsufficientCredits),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrNoWorkingDays):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrOwnRequestReview),
		errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound),
		errors.Is(err, payroll.ErrRuleNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists),
		errors.Is(err, payroll.ErrRuleNameExists),
		errors.Is(err, payroll.ErrInvalidStatusTransition):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrNoBaseSalary),
		errors.Is(err, payroll.ErrEmployeeNotActive),
		errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrNoEmployeesSelected),
		errors.Is(err, payroll.ErrInvalidRuleType),
		errors.Is(err, payroll.ErrInvalidRuleKind):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
