package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/ems-backend-go/internal/domain/activity"
	"github.com/workforcehq/ems-backend-go/internal/domain/attendance"
	"github.com/workforcehq/ems-backend-go/internal/domain/employee"
	"github.com/workforcehq/ems-backend-go/internal/domain/payroll"
)

func authedContext(t *testing.T, employeeID string, role employee.Role) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records map[string]attendance.Attendance
	listed  []attendance.Attendance
	updated *attendance.Attendance
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	record, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record attendance.Attendance) error {
	f.updated = &record
	return nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.ListAttendanceFilter) ([]attendance.Attendance, int64, error) {
	return f.listed, int64(len(f.listed)), nil
}

type fakeActivityRepo struct {
	entries []activity.Entry
}

func (f *fakeActivityRepo) Insert(_ context.Context, entry activity.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeActivityRepo) List(_ context.Context, _ activity.ListFilter) ([]activity.Entry, int64, error) {
	return nil, 0, nil
}

func newTestService(repo *fakeAttendanceRepo) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		attendanceRepo: repo,
		activityRepo:   &fakeActivityRepo{},
		cfg:            payroll.DefaultConfig(),
		now:            time.Now,
	}
}

func TestLateMinutes(t *testing.T) {
	loc := time.UTC
	day := func(h, m int) time.Time {
		return time.Date(2025, time.September, 1, h, m, 0, 0, loc)
	}

	cases := []struct {
		name   string
		timeIn time.Time
		want   int
	}{
		{"on time", day(8, 0), 0},
		{"early", day(7, 30), 0},
		{"15 late", day(8, 15), 15},
		{"90 late", day(9, 30), 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LateMinutes(tc.timeIn, 8, 0))
		})
	}
}

func TestWorkedHours(t *testing.T) {
	eight := decimal.NewFromInt(8)
	in := time.Date(2025, time.September, 1, 8, 0, 0, 0, time.UTC)

	total, overtime := WorkedHours(in, in.Add(8*time.Hour), eight)
	assert.True(t, total.Equal(decimal.NewFromInt(8)), "total = %s", total)
	assert.True(t, overtime.IsZero(), "overtime = %s", overtime)

	total, overtime = WorkedHours(in, in.Add(10*time.Hour+30*time.Minute), eight)
	assert.True(t, total.Equal(decimal.NewFromFloat(10.5)), "total = %s", total)
	assert.True(t, overtime.Equal(decimal.NewFromFloat(2.5)), "overtime = %s", overtime)

	total, overtime = WorkedHours(in, in.Add(4*time.Hour), eight)
	assert.True(t, total.Equal(decimal.NewFromInt(4)), "total = %s", total)
	assert.True(t, overtime.IsZero())

	// Time-out before time-in yields nothing rather than negative hours.
	total, overtime = WorkedHours(in, in.Add(-time.Hour), eight)
	assert.True(t, total.IsZero())
	assert.True(t, overtime.IsZero())
}

func TestUpdateRecomputesHours(t *testing.T) {
	timeIn := time.Date(2025, time.September, 1, 8, 0, 0, 0, time.UTC)
	repo := &fakeAttendanceRepo{records: map[string]attendance.Attendance{
		"att-1": {
			ID:         "att-1",
			EmployeeID: "emp-1",
			Date:       time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			TimeIn:     &timeIn,
			Status:     attendance.StatusPresent,
		},
	}}
	svc := newTestService(repo)
	ctx := authedContext(t, "hr-1", employee.RoleHR)

	timeOut := "2025-09-01T18:30:00Z"
	result, err := svc.Update(ctx, "att-1", attendance.UpdateAttendanceRequest{TimeOut: &timeOut})
	require.NoError(t, err)

	assert.Equal(t, "10.5", result.HoursWorked.String())
	assert.Equal(t, "2.5", result.OvertimeHours.String())
	require.NotNil(t, repo.updated)
	assert.Equal(t, "att-1", repo.updated.ID)
}

func TestUpdateRecomputesLateMinutes(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]attendance.Attendance{
		"att-1": {
			ID:         "att-1",
			EmployeeID: "emp-1",
			Date:       time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			Status:     attendance.StatusAbsent,
		},
	}}
	svc := newTestService(repo)
	ctx := authedContext(t, "hr-1", employee.RoleHR)

	timeIn := "2025-09-01T08:45:00Z"
	status := "late"
	result, err := svc.Update(ctx, "att-1", attendance.UpdateAttendanceRequest{TimeIn: &timeIn, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, 45, result.LateMinutes)
	assert.Equal(t, "late", result.Status)
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{records: map[string]attendance.Attendance{}})
	ctx := authedContext(t, "hr-1", employee.RoleHR)

	status := "present"
	_, err := svc.Update(ctx, "missing", attendance.UpdateAttendanceRequest{Status: &status})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestDelete(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]attendance.Attendance{
		"att-1": {ID: "att-1"},
	}}
	svc := newTestService(repo)
	ctx := authedContext(t, "admin-1", employee.RoleAdmin)

	require.NoError(t, svc.Delete(ctx, "att-1"))
	assert.ErrorIs(t, svc.Delete(ctx, "att-1"), attendance.ErrAttendanceNotFound)
}

func TestGetMonthlyReport(t *testing.T) {
	sept := func(d int) time.Time {
		return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC)
	}
	repo := &fakeAttendanceRepo{listed: []attendance.Attendance{
		{ID: "a1", EmployeeID: "emp-1", Date: sept(1), Status: attendance.StatusPresent, HoursWorked: decimal.NewFromInt(8)},
		{ID: "a2", EmployeeID: "emp-1", Date: sept(2), Status: attendance.StatusLate, LateMinutes: 20, HoursWorked: decimal.NewFromFloat(7.5)},
		{ID: "a3", EmployeeID: "emp-1", Date: sept(3), Status: attendance.StatusPresent, HoursWorked: decimal.NewFromInt(10), OvertimeHours: decimal.NewFromInt(2)},
		{ID: "a4", EmployeeID: "emp-1", Date: sept(4), Status: attendance.StatusAbsent},
		{ID: "a5", EmployeeID: "emp-1", Date: sept(5), Status: attendance.StatusHalfDay, HoursWorked: decimal.NewFromInt(4)},
	}}
	svc := newTestService(repo)
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	report, err := svc.GetMonthlyReport(ctx, "emp-1", 9, 2025)
	require.NoError(t, err)

	assert.Equal(t, 9, report.Month)
	assert.Equal(t, 2025, report.Year)
	assert.Len(t, report.Records, 5)
	assert.Equal(t, 5, report.Summary.TotalDays)
	assert.Equal(t, 2, report.Summary.PresentDays)
	assert.Equal(t, 1, report.Summary.LateDays)
	assert.Equal(t, 1, report.Summary.AbsentDays)
	assert.Equal(t, 1, report.Summary.HalfDays)
	assert.Equal(t, 20, report.Summary.TotalLateMinutes)
	assert.Equal(t, "29.5", report.Summary.TotalHours.String())
	assert.Equal(t, "2", report.Summary.TotalOvertimeHours.String())
}

func TestGetMonthlyReportSelfOnly(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{})
	ctx := authedContext(t, "emp-1", employee.RoleEmployee)

	_, err := svc.GetMonthlyReport(ctx, "emp-2", 9, 2025)
	assert.ErrorIs(t, err, employee.ErrUnauthorized)
}
