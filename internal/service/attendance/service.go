package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/workforcehq/ems-backend-go/internal/domain/activity"
	"github.com/workforcehq/ems-backend-go/internal/domain/attendance"
	"github.com/workforcehq/ems-backend-go/internal/domain/employee"
	"github.com/workforcehq/ems-backend-go/internal/domain/payroll"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	activityRepo   activity.Repository
	cfg            payroll.Config
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, activityRepo activity.Repository, cfg payroll.Config) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		activityRepo:   activityRepo,
		cfg:            cfg,
		now:            time.Now,
	}
}

func getClaimsFromContext(ctx context.Context) (employeeID string, role employee.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)

	return employeeID, employee.Role(roleStr), nil
}

func (s *AttendanceServiceImpl) logActivity(ctx context.Context, entry activity.Entry) {
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		slog.Error("failed to write activity log", "action", entry.Action, "error", err)
	}
}

// LateMinutes measures how far past the work-start time the clock-in
// landed. Early arrivals are never negative.
func LateMinutes(timeIn time.Time, startHour, startMinute int) int {
	workStart := time.Date(timeIn.Year(), timeIn.Month(), timeIn.Day(), startHour, startMinute, 0, 0, timeIn.Location())
	if !timeIn.After(workStart) {
		return 0
	}
	return int(timeIn.Sub(workStart).Minutes())
}

// WorkedHours splits a shift into regular and overtime hours. Anything
// past the regular hours per day counts as overtime.
func WorkedHours(timeIn, timeOut time.Time, regularHoursPerDay decimal.Decimal) (total, overtime decimal.Decimal) {
	if !timeOut.After(timeIn) {
		return decimal.Zero, decimal.Zero
	}
	total = decimal.NewFromFloat(timeOut.Sub(timeIn).Hours()).Round(2)
	if total.GreaterThan(regularHoursPerDay) {
		overtime = total.Sub(regularHoursPerDay)
	} else {
		overtime = decimal.Zero
	}
	return total, overtime
}

func (s *AttendanceServiceImpl) TimeIn(ctx context.Context, req attendance.TimeInRequest) (attendance.AttendanceResponse, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, err
	}
	if err == nil && existing.TimeIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyTimedIn
	}

	lateMinutes := LateMinutes(now, s.cfg.WorkStartHour, s.cfg.WorkStartMinute)
	status := attendance.StatusPresent
	if lateMinutes > 0 {
		status = attendance.StatusLate
	}

	record := attendance.Attendance{
		EmployeeID:    employeeID,
		Date:          today,
		TimeIn:        &now,
		Status:        status,
		LateMinutes:   lateMinutes,
		HoursWorked:   decimal.Zero,
		OvertimeHours: decimal.Zero,
		Notes:         req.Notes,
	}

	var saved attendance.Attendance
	if err == nil {
		// Row exists from the absent-marker or a leave upsert; take it over.
		record.ID = existing.ID
		if updateErr := s.attendanceRepo.Update(ctx, record); updateErr != nil {
			return attendance.AttendanceResponse{}, updateErr
		}
		saved = record
	} else {
		saved, err = s.attendanceRepo.Create(ctx, record)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &employeeID,
		Action:     activity.ActionTimeIn,
		EntityType: "attendance",
		EntityID:   &saved.ID,
	})

	return toResponse(saved), nil
}

func (s *AttendanceServiceImpl) TimeOut(ctx context.Context, req attendance.TimeOutRequest) (attendance.AttendanceResponse, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotTimedIn
		}
		return attendance.AttendanceResponse{}, err
	}
	if record.TimeIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotTimedIn
	}
	if record.TimeOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyTimedOut
	}

	record.TimeOut = &now
	record.HoursWorked, record.OvertimeHours = WorkedHours(*record.TimeIn, now, s.cfg.RegularHoursPerDay)
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &employeeID,
		Action:     activity.ActionTimeOut,
		EntityType: "attendance",
		EntityID:   &record.ID,
	})

	return toResponse(record), nil
}

func (s *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(record), nil
}

func (s *AttendanceServiceImpl) List(ctx context.Context, query attendance.ListAttendanceQuery) (attendance.ListAttendanceResponse, error) {
	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// Employees only see their own history.
	if role == employee.RoleEmployee {
		query.EmployeeID = callerID
	}

	filter, err := query.Validate()
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := attendance.ListAttendanceResponse{
		Data:       make([]attendance.AttendanceResponse, 0, len(records)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, record := range records {
		resp.Data = append(resp.Data, toResponse(record))
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) Update(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	parsed, err := req.Validate()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if parsed.TimeIn != nil {
		record.TimeIn = parsed.TimeIn
		record.LateMinutes = LateMinutes(*parsed.TimeIn, s.cfg.WorkStartHour, s.cfg.WorkStartMinute)
	}
	if parsed.TimeOut != nil {
		record.TimeOut = parsed.TimeOut
	}
	if parsed.Status != nil {
		record.Status = *parsed.Status
	}
	if parsed.Notes != nil {
		record.Notes = parsed.Notes
	}
	if record.TimeIn != nil && record.TimeOut != nil {
		record.HoursWorked, record.OvertimeHours = WorkedHours(*record.TimeIn, *record.TimeOut, s.cfg.RegularHoursPerDay)
	}

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionAttendanceUpdated,
		EntityType: "attendance",
		EntityID:   &record.ID,
	})

	return toResponse(record), nil
}

func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionAttendanceDeleted,
		EntityType: "attendance",
		EntityID:   &id,
	})

	return nil
}

func (s *AttendanceServiceImpl) GetMonthlyReport(ctx context.Context, employeeID string, month, year int) (attendance.MonthlyReportResponse, error) {
	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.MonthlyReportResponse{}, err
	}
	if role == employee.RoleEmployee && employeeID != callerID {
		return attendance.MonthlyReportResponse{}, employee.ErrUnauthorized
	}

	now := s.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	records, _, err := s.attendanceRepo.List(ctx, attendance.ListAttendanceFilter{
		EmployeeID: employeeID,
		StartDate:  &monthStart,
		EndDate:    &monthEnd,
		Page:       1,
		Limit:      31,
	})
	if err != nil {
		return attendance.MonthlyReportResponse{}, err
	}

	report := attendance.MonthlyReportResponse{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
		Records:    make([]attendance.AttendanceResponse, 0, len(records)),
		Summary: attendance.MonthlyReportSummary{
			TotalHours:         decimal.Zero,
			TotalOvertimeHours: decimal.Zero,
		},
	}
	for _, record := range records {
		report.Records = append(report.Records, toResponse(record))
		report.Summary.TotalDays++
		report.Summary.TotalHours = report.Summary.TotalHours.Add(record.HoursWorked)
		report.Summary.TotalOvertimeHours = report.Summary.TotalOvertimeHours.Add(record.OvertimeHours)
		report.Summary.TotalLateMinutes += record.LateMinutes

		switch record.Status {
		case attendance.StatusPresent:
			report.Summary.PresentDays++
		case attendance.StatusLate:
			report.Summary.LateDays++
		case attendance.StatusAbsent:
			report.Summary.AbsentDays++
		case attendance.StatusHalfDay:
			report.Summary.HalfDays++
		}
	}

	return report, nil
}

func toResponse(a attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		Date:          a.Date.Format("2006-01-02"),
		Status:        string(a.Status),
		LateMinutes:   a.LateMinutes,
		HoursWorked:   a.HoursWorked,
		OvertimeHours: a.OvertimeHours,
		Notes:         a.Notes,
	}
	if a.TimeIn != nil {
		v := a.TimeIn.Format(time.RFC3339)
		resp.TimeIn = &v
	}
	if a.TimeOut != nil {
		v := a.TimeOut.Format(time.RFC3339)
		resp.TimeOut = &v
	}
	return resp
}
