package payroll

import (
	"context"
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

// TxRunner runs fn inside a database transaction carried on the context.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type PayrollServiceImpl struct {
	tx             TxRunner
	payrollRepo    payroll.PayrollRepository
	ruleRepo       payroll.RuleRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	activityRepo   activity.Repository
	calc           *Calculator
}

func NewPayrollService(
	tx TxRunner,
	payrollRepo payroll.PayrollRepository,
	ruleRepo payroll.RuleRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	activityRepo activity.Repository,
	cfg payroll.Config,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		payrollRepo:    payrollRepo,
		ruleRepo:       ruleRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		activityRepo:   activityRepo,
		calc:           NewCalculator(cfg),
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

func (s *PayrollServiceImpl) logActivity(ctx context.Context, entry activity.Entry) {
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		slog.Error("failed to write activity log", "action", entry.Action, "error", err)
	}
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.BatchResult, error) {
	parsed, err := req.Validate()
	if err != nil {
		return payroll.BatchResult{}, err
	}

	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.BatchResult{}, err
	}

	result := payroll.BatchResult{TotalAmount: decimal.Zero}

	// Each employee runs in its own transaction so one failure never rolls
	// back another employee's record.
	for _, employeeID := range parsed.EmployeeIDs {
		var record payroll.PayrollRecord
		err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			var genErr error
			record, genErr = s.generateOne(txCtx, employeeID, parsed.PeriodStart, parsed.PeriodEnd, callerID)
			return genErr
		})
		if err != nil {
			result.AddFailure(employeeID, err)
			slog.Warn("payroll generation failed for employee",
				"employee_id", employeeID, "error", err)
			continue
		}
		result.AddSuccess(record)
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionPayrollGenerated,
		EntityType: "payroll",
		Details: map[string]any{
			"period_start": parsed.PeriodStart.Format("2006-01-02"),
			"period_end":   parsed.PeriodEnd.Format("2006-01-02"),
			"generated":    result.Generated,
			"failed":       result.Failed,
			"total_amount": result.TotalAmount.String(),
		},
	})

	return result, nil
}

func (s *PayrollServiceImpl) generateOne(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, generatedBy string) (payroll.PayrollRecord, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	if emp.BaseSalary == nil || !emp.BaseSalary.IsPositive() {
		return payroll.PayrollRecord{}, fmt.Errorf("%s: %w", emp.FullName(), payroll.ErrNoBaseSalary)
	}

	agg, err := s.attendanceRepo.GetAggregate(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	comp := s.calc.Compute(*emp.BaseSalary, agg, rules, periodStart, periodEnd)

	record := payroll.PayrollRecord{
		EmployeeID:      employeeID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		WorkingDays:     comp.WorkingDays,
		BaseSalary:      *emp.BaseSalary,
		TotalHours:      comp.TotalHours,
		OvertimePay:     comp.OvertimePay,
		TotalAllowances: comp.TotalAllowances,
		TotalDeductions: comp.TotalDeductions,
		GrossPay:        comp.GrossPay,
		NetPay:          comp.NetPay,
		Status:          payroll.RecordStatusDraft,
		GeneratedBy:     generatedBy,
		LineItems:       comp.LineItems,
	}

	return s.payrollRepo.CreateWithLineItems(ctx, record)
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	callerID, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if role == employee.RoleEmployee && record.EmployeeID != callerID {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}

	items, err := s.payrollRepo.GetLineItems(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	record.LineItems = items

	return toRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.ListPayrollFilter) (payroll.ListPayrollResponse, error) {
	normalizePaging(&filter.Page, &filter.Limit)

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	return toListResponse(records, total, filter.Page, filter.Limit), nil
}

func (s *PayrollServiceImpl) ListMyRecords(ctx context.Context, page, limit int) (payroll.ListPayrollResponse, error) {
	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	normalizePaging(&page, &limit)

	// Employees only see finalized records.
	records, total, err := s.payrollRepo.List(ctx, payroll.ListPayrollFilter{
		EmployeeID: callerID,
		Statuses:   []string{string(payroll.RecordStatusApproved), string(payroll.RecordStatusProcessed)},
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	return toListResponse(records, total, page, limit), nil
}

func (s *PayrollServiceImpl) UpdateRecordStatus(ctx context.Context, id string, req payroll.UpdateStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	next := payroll.RecordStatus(req.Status)
	if !record.Status.CanTransitionTo(next) {
		return payroll.ErrInvalidStatusTransition
	}

	if err := s.payrollRepo.UpdateStatus(ctx, id, next); err != nil {
		return err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionPayrollStatus,
		EntityType: "payroll",
		EntityID:   &id,
		Details: map[string]any{
			"from": string(record.Status),
			"to":   string(next),
		},
	})

	return nil
}

func (s *PayrollServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Only drafts may be deleted; anything further along must be cancelled.
	if record.Status != payroll.RecordStatusDraft {
		return payroll.ErrInvalidStatusTransition
	}

	return s.payrollRepo.Delete(ctx, id)
}

// ========== COMPENSATION RULES ==========

func (s *PayrollServiceImpl) CreateRule(ctx context.Context, req payroll.CreateRuleRequest) (payroll.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RuleResponse{}, err
	}

	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RuleResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.ruleRepo.Create(ctx, payroll.CompensationRule{
		Name:     req.Name,
		RuleType: payroll.RuleType(req.RuleType),
		Kind:     payroll.RuleKind(req.Kind),
		Amount:   req.Amount,
		IsActive: isActive,
	})
	if err != nil {
		return payroll.RuleResponse{}, err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionRuleCreated,
		EntityType: "compensation_rule",
		EntityID:   &created.ID,
	})

	return toRuleResponse(created), nil
}

func (s *PayrollServiceImpl) ListRules(ctx context.Context) ([]payroll.RuleResponse, error) {
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.RuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, toRuleResponse(rule))
	}

	return responses, nil
}

func (s *PayrollServiceImpl) UpdateRule(ctx context.Context, req payroll.UpdateRuleRequest) error {
	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.ruleRepo.Update(ctx, req); err != nil {
		return err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionRuleUpdated,
		EntityType: "compensation_rule",
		EntityID:   &req.ID,
	})

	return nil
}

func (s *PayrollServiceImpl) DeleteRule(ctx context.Context, id string) error {
	callerID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logActivity(ctx, activity.Entry{
		EmployeeID: &callerID,
		Action:     activity.ActionRuleDeleted,
		EntityType: "compensation_rule",
		EntityID:   &id,
	})

	return nil
}

// ========== MAPPING ==========

func toRecordResponse(record payroll.PayrollRecord) payroll.PayrollRecordResponse {
	resp := payroll.PayrollRecordResponse{
		ID:              record.ID,
		EmployeeID:      record.EmployeeID,
		PeriodStart:     record.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       record.PeriodEnd.Format("2006-01-02"),
		WorkingDays:     record.WorkingDays,
		BaseSalary:      record.BaseSalary,
		TotalHours:      record.TotalHours,
		OvertimePay:     record.OvertimePay,
		TotalAllowances: record.TotalAllowances,
		TotalDeductions: record.TotalDeductions,
		GrossPay:        record.GrossPay,
		NetPay:          record.NetPay,
		Status:          string(record.Status),
		GeneratedBy:     record.GeneratedBy,
	}
	for _, item := range record.LineItems {
		resp.LineItems = append(resp.LineItems, payroll.LineItemResponse{
			ItemType: string(item.ItemType),
			Name:     item.Name,
			Amount:   item.Amount,
		})
	}
	return resp
}

func toListResponse(records []payroll.PayrollRecord, total int64, page, limit int) payroll.ListPayrollResponse {
	resp := payroll.ListPayrollResponse{
		Data:       make([]payroll.PayrollRecordResponse, 0, len(records)),
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}
	for _, record := range records {
		resp.Data = append(resp.Data, toRecordResponse(record))
	}
	return resp
}

func toRuleResponse(rule payroll.CompensationRule) payroll.RuleResponse {
	return payroll.RuleResponse{
		ID:       rule.ID,
		Name:     rule.Name,
		RuleType: string(rule.RuleType),
		Kind:     string(rule.Kind),
		Amount:   rule.Amount,
		IsActive: rule.IsActive,
	}
}

func normalizePaging(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 || *limit > 100 {
		*limit = 20
	}
}
