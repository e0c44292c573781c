package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyTimedIn     = errors.New("already timed in for today")
	ErrNotTimedIn         = errors.New("no time-in recorded for today")
	ErrAlreadyTimedOut    = errors.New("already timed out for today")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
)
