package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeNameExists  = errors.New("leave type name already exists")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveCreditNotFound  = errors.New("no leave credits for this leave type")
	ErrInsufficientCredits  = errors.New("insufficient leave credits")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrOverlappingRequest   = errors.New("an approved or pending request overlaps these dates")
	ErrRequestNotPending    = errors.New("leave request is not pending")
	ErrCannotCancelReviewed = errors.New("only pending requests can be cancelled")
	ErrNoWorkingDays        = errors.New("requested range contains no working days")
	ErrOwnRequestReview     = errors.New("cannot review your own leave request")
	ErrNotRequestOwner      = errors.New("leave request belongs to another employee")
)
