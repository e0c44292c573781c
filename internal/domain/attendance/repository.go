package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	Create(ctx context.Context, record Attendance) (Attendance, error)
	Update(ctx context.Context, record Attendance) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListAttendanceFilter) ([]Attendance, int64, error)

	// GetAggregate sums attendance for one employee over [startDate, endDate]
	// inclusive. Missing days are not counted; absences come from explicit
	// absent rows written by the nightly job.
	GetAggregate(ctx context.Context, employeeID string, startDate, endDate time.Time) (Aggregate, error)

	// UpsertStatus writes a status-only row for a date, used by leave
	// approval (on_leave) and the nightly absent marker. Existing rows with
	// a time-in are left untouched.
	UpsertStatus(ctx context.Context, employeeID string, date time.Time, status Status) error

	// MarkAbsentees inserts absent rows for every active employee without
	// an attendance row for the given date. Returns the number of rows
	// inserted.
	MarkAbsentees(ctx context.Context, date time.Time) (int64, error)
}
