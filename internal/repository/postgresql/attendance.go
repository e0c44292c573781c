package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workforcehq/ems-backend-go/internal/domain/attendance"
	"github.com/workforcehq/ems-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date, time_in, time_out, status,
	late_minutes, hours_worked, overtime_hours, notes, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.TimeIn, &a.TimeOut, &a.Status,
		&a.LateMinutes, &a.HoursWorked, &a.OvertimeHours, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by date: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, time_in, time_out, status,
			late_minutes, hours_worked, overtime_hours, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.TimeIn, record.TimeOut, record.Status,
		record.LateMinutes, record.HoursWorked, record.OvertimeHours, record.Notes,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_attendances_employee_date") {
			return attendance.Attendance{}, attendance.ErrAlreadyTimedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) Update(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET time_in = $2, time_out = $3, status = $4, late_minutes = $5,
			hours_worked = $6, overtime_hours = $7, notes = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.ID, record.TimeIn, record.TimeOut, record.Status, record.LateMinutes,
		record.HoursWorked, record.OvertimeHours, record.Notes,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM attendances WHERE id = $1 RETURNING id`

	var deletedID string
	if err := q.QueryRow(ctx, query, id).Scan(&deletedID); err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	return nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereParts := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		whereParts = append(whereParts, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		whereParts = append(whereParts, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		whereParts = append(whereParts, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != "" {
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	where := strings.Join(whereParts, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM attendances
		WHERE %s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, total, nil
}

func (r *attendanceRepository) GetAggregate(ctx context.Context, employeeID string, startDate, endDate time.Time) (attendance.Aggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(hours_worked), 0),
			COALESCE(SUM(overtime_hours), 0),
			COALESCE(SUM(late_minutes), 0),
			COUNT(*) FILTER (WHERE status IN ('present', 'late')),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'half_day'),
			COUNT(*) FILTER (WHERE status = 'on_leave')
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`

	var agg attendance.Aggregate
	err := q.QueryRow(ctx, query, employeeID, startDate, endDate).Scan(
		&agg.TotalHours, &agg.OvertimeHours, &agg.LateMinutes,
		&agg.PresentDays, &agg.AbsentDays, &agg.HalfDays, &agg.LeaveDays,
	)
	if err != nil {
		return attendance.Aggregate{}, fmt.Errorf("failed to aggregate attendance: %w", err)
	}

	return agg, nil
}

func (r *attendanceRepository) UpsertStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW()
		WHERE attendances.time_in IS NULL
	`

	if _, err := q.Exec(ctx, query, employeeID, date, status); err != nil {
		return fmt.Errorf("failed to upsert attendance status: %w", err)
	}

	return nil
}

func (r *attendanceRepository) MarkAbsentees(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, status)
		SELECT e.id, $1, 'absent'
		FROM employees e
		WHERE e.employment_status = 'active'
		  AND e.deleted_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.employee_id = e.id AND a.date = $1
		  )
	`

	tag, err := q.Exec(ctx, query, date)
	if err != nil {
		return 0, fmt.Errorf("failed to mark absentees: %w", err)
	}

	return tag.RowsAffected(), nil
}
