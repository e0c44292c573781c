package payroll

import (
	"context"
	"errors"
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

const (
	hrID    = "7f000001-0000-4000-8000-000000000099"
	empAID  = "7f000001-0000-4000-8000-00000000000a"
	empBID  = "7f000001-0000-4000-8000-00000000000b"
	ghostID = "7f000001-0000-4000-8000-0000000000ff"
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

// ========== FAKES ==========

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// rollbackTx gives the fake payroll repo transaction semantics: writes
// made inside a failed fn are discarded, like a real tx rollback.
type rollbackTx struct {
	repo *fakePayrollRepo
}

func (tx rollbackTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	snapshot := len(tx.repo.created)
	if err := fn(ctx); err != nil {
		tx.repo.created = tx.repo.created[:snapshot]
		return err
	}
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	aggregates map[string]attendance.Aggregate
}

func (f *fakeAttendanceRepo) GetAggregate(_ context.Context, employeeID string, _, _ time.Time) (attendance.Aggregate, error) {
	return f.aggregates[employeeID], nil
}

type fakeRuleRepo struct {
	payroll.RuleRepository
	rules []payroll.CompensationRule
}

func (f *fakeRuleRepo) ListActive(context.Context) ([]payroll.CompensationRule, error) {
	return f.rules, nil
}

type fakePayrollRepo struct {
	payroll.PayrollRepository
	created    []payroll.PayrollRecord
	existing   map[string]bool // employee ids that already have a record for the period
	failItems  map[string]bool // employee ids whose line-item insert blows up mid-write
	statusByID map[string]payroll.RecordStatus
}

func (f *fakePayrollRepo) CreateWithLineItems(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	if f.existing[record.EmployeeID] {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
	}
	record.ID = record.EmployeeID + "-record"
	f.created = append(f.created, record)
	if f.failItems[record.EmployeeID] {
		// The record row is already in; only a rollback can take it out.
		return payroll.PayrollRecord{}, errors.New("failed to insert payroll line item")
	}
	return record, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.PayrollRecord, error) {
	status, ok := f.statusByID[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return payroll.PayrollRecord{ID: id, Status: status}, nil
}

func (f *fakePayrollRepo) UpdateStatus(_ context.Context, id string, status payroll.RecordStatus) error {
	f.statusByID[id] = status
	return nil
}

func (f *fakePayrollRepo) Delete(_ context.Context, id string) error {
	delete(f.statusByID, id)
	return nil
}

type fakeActivityRepo struct {
	entries []activity.Entry
}

func (f *fakeActivityRepo) Insert(_ context.Context, entry activity.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeActivityRepo) List(context.Context, activity.ListFilter) ([]activity.Entry, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func salary(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newTestService(employees map[string]employee.Employee, aggregates map[string]attendance.Aggregate, rules []payroll.CompensationRule) (payroll.PayrollService, *fakePayrollRepo, *fakeActivityRepo) {
	payrollRepo := &fakePayrollRepo{
		existing:   map[string]bool{},
		statusByID: map[string]payroll.RecordStatus{},
	}
	activityRepo := &fakeActivityRepo{}
	svc := NewPayrollService(
		passthroughTx{},
		payrollRepo,
		&fakeRuleRepo{rules: rules},
		&fakeEmployeeRepo{employees: employees},
		&fakeAttendanceRepo{aggregates: aggregates},
		activityRepo,
		payroll.DefaultConfig(),
	)
	return svc, payrollRepo, activityRepo
}

// ========== TESTS ==========

func TestGenerate_BatchIsolation(t *testing.T) {
	employees := map[string]employee.Employee{
		empAID: {ID: empAID, FirstName: "Ana", LastName: "Reyes", BaseSalary: salary(22000)},
		empBID: {ID: empBID, FirstName: "Ben", LastName: "Cruz"}, // no base salary
	}
	svc, payrollRepo, activityRepo := newTestService(employees, map[string]attendance.Aggregate{}, nil)

	ctx := authedContext(t, hrID, employee.RoleHR)
	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeIDs: []string{empAID, empBID, ghostID},
		PeriodStart: "2025-09-01",
		PeriodEnd:   "2025-09-30",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 2, result.Failed)
	assert.True(t, result.TotalAmount.Equal(decimal.NewFromInt(22000)), "total = %s", result.TotalAmount)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, empBID, result.Errors[0].EmployeeID)
	assert.Contains(t, result.Errors[0].Message, "no base salary")
	assert.Equal(t, ghostID, result.Errors[1].EmployeeID)

	// Only the successful employee got a persisted record.
	require.Len(t, payrollRepo.created, 1)
	record := payrollRepo.created[0]
	assert.Equal(t, empAID, record.EmployeeID)
	assert.Equal(t, payroll.RecordStatusDraft, record.Status)
	assert.Equal(t, hrID, record.GeneratedBy)

	// The run leaves an audit entry with the batch counts.
	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, activity.ActionPayrollGenerated, activityRepo.entries[0].Action)
	assert.Equal(t, 1, activityRepo.entries[0].Details["generated"])
	assert.Equal(t, 2, activityRepo.entries[0].Details["failed"])
}

func TestGenerate_TotalAmountSumsSuccessesOnly(t *testing.T) {
	employees := map[string]employee.Employee{
		empAID: {ID: empAID, FirstName: "Ana", LastName: "Reyes", BaseSalary: salary(22000)},
		empBID: {ID: empBID, FirstName: "Ben", LastName: "Cruz", BaseSalary: salary(33000)},
	}
	aggregates := map[string]attendance.Aggregate{
		// 2 absences for Ben: 2 x 1500 daily rate
		empBID: {AbsentDays: 2},
	}
	svc, _, _ := newTestService(employees, aggregates, nil)

	ctx := authedContext(t, hrID, employee.RoleHR)
	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeIDs: []string{empAID, empBID},
		PeriodStart: "2025-09-01",
		PeriodEnd:   "2025-09-30",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Generated)
	assert.Equal(t, 0, result.Failed)
	// 22000 + (33000 - 3000)
	assert.True(t, result.TotalAmount.Equal(decimal.NewFromInt(52000)), "total = %s", result.TotalAmount)
}

func TestGenerate_DuplicatePeriodRecorded(t *testing.T) {
	employees := map[string]employee.Employee{
		empAID: {ID: empAID, FirstName: "Ana", LastName: "Reyes", BaseSalary: salary(22000)},
		empBID: {ID: empBID, FirstName: "Ben", LastName: "Cruz", BaseSalary: salary(33000)},
	}
	svc, payrollRepo, _ := newTestService(employees, map[string]attendance.Aggregate{}, nil)
	payrollRepo.existing[empAID] = true

	ctx := authedContext(t, hrID, employee.RoleHR)
	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeIDs: []string{empAID, empBID},
		PeriodStart: "2025-09-01",
		PeriodEnd:   "2025-09-30",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, empAID, result.Errors[0].EmployeeID)
	assert.Contains(t, result.Errors[0].Message, "already exists")
}

func TestGenerate_FailedWriteLeavesNoRecord(t *testing.T) {
	employees := map[string]employee.Employee{
		empAID: {ID: empAID, FirstName: "Ana", LastName: "Reyes", BaseSalary: salary(22000)},
		empBID: {ID: empBID, FirstName: "Ben", LastName: "Cruz", BaseSalary: salary(33000)},
	}
	payrollRepo := &fakePayrollRepo{
		existing:   map[string]bool{},
		failItems:  map[string]bool{empBID: true},
		statusByID: map[string]payroll.RecordStatus{},
	}
	svc := NewPayrollService(
		rollbackTx{repo: payrollRepo},
		payrollRepo,
		&fakeRuleRepo{},
		&fakeEmployeeRepo{employees: employees},
		&fakeAttendanceRepo{aggregates: map[string]attendance.Aggregate{}},
		&fakeActivityRepo{},
		payroll.DefaultConfig(),
	)

	ctx := authedContext(t, hrID, employee.RoleHR)
	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeIDs: []string{empAID, empBID},
		PeriodStart: "2025-09-01",
		PeriodEnd:   "2025-09-30",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, empBID, result.Errors[0].EmployeeID)
	assert.True(t, result.TotalAmount.Equal(decimal.NewFromInt(22000)), "total = %s", result.TotalAmount)

	// The failed employee's half-written record was rolled back; only the
	// successful one survives the batch.
	require.Len(t, payrollRepo.created, 1)
	assert.Equal(t, empAID, payrollRepo.created[0].EmployeeID)
}

func TestGenerate_RequestValidation(t *testing.T) {
	svc, _, _ := newTestService(nil, nil, nil)
	ctx := authedContext(t, hrID, employee.RoleHR)

	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		PeriodStart: "2025-09-01",
		PeriodEnd:   "2025-09-30",
	})
	assert.ErrorIs(t, err, payroll.ErrNoEmployeesSelected)

	_, err = svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeIDs: []string{empAID},
		PeriodStart: "2025-09-30",
		PeriodEnd:   "2025-09-01",
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestUpdateRecordStatus_Transitions(t *testing.T) {
	svc, payrollRepo, _ := newTestService(nil, nil, nil)
	payrollRepo.statusByID["rec-1"] = payroll.RecordStatusDraft

	ctx := authedContext(t, hrID, employee.RoleHR)

	// draft cannot jump straight to approved
	err := svc.UpdateRecordStatus(ctx, "rec-1", payroll.UpdateStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)

	err = svc.UpdateRecordStatus(ctx, "rec-1", payroll.UpdateStatusRequest{Status: "pending_approval"})
	require.NoError(t, err)
	assert.Equal(t, payroll.RecordStatusPendingApproval, payrollRepo.statusByID["rec-1"])

	err = svc.UpdateRecordStatus(ctx, "rec-1", payroll.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)

	err = svc.UpdateRecordStatus(ctx, "rec-1", payroll.UpdateStatusRequest{Status: "processed"})
	require.NoError(t, err)

	// processed is terminal
	err = svc.UpdateRecordStatus(ctx, "rec-1", payroll.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)
}

func TestDeleteRecord_DraftOnly(t *testing.T) {
	svc, payrollRepo, _ := newTestService(nil, nil, nil)
	payrollRepo.statusByID["rec-draft"] = payroll.RecordStatusDraft
	payrollRepo.statusByID["rec-approved"] = payroll.RecordStatusApproved

	ctx := authedContext(t, hrID, employee.RoleHR)

	require.NoError(t, svc.DeleteRecord(ctx, "rec-draft"))
	assert.NotContains(t, payrollRepo.statusByID, "rec-draft")

	err := svc.DeleteRecord(ctx, "rec-approved")
	assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)

	err = svc.DeleteRecord(ctx, "rec-missing")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}
