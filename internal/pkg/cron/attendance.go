package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/workforcehq/ems-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository) *AttendanceJobs {
	return &AttendanceJobs{attendanceRepo: attendanceRepo}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees writes an absent row for every active employee who
// never clocked in. It runs against the previous day, once the day is
// over, and only for weekdays.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run in the first hour after midnight
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	yesterday = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	if wd := yesterday.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job", "date", yesterday.Format("2006-01-02"))

	marked, err := j.attendanceRepo.MarkAbsentees(ctx, yesterday)
	if err != nil {
		return err
	}

	slog.Info("Cron: Marked absent employees", "date", yesterday.Format("2006-01-02"), "count", marked)
	return nil
}
