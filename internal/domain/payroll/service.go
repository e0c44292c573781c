package payroll

import "context"

type PayrollService interface {
	// Generate runs payroll for the requested employees and period. Each
	// employee is processed independently; failures are collected in the
	// returned BatchResult rather than aborting the run.
	Generate(ctx context.Context, req GeneratePayrollRequest) (BatchResult, error)

	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListRecords(ctx context.Context, filter ListPayrollFilter) (ListPayrollResponse, error)

	// ListMyRecords returns the calling employee's own records, restricted
	// to approved and processed statuses.
	ListMyRecords(ctx context.Context, page, limit int) (ListPayrollResponse, error)
	UpdateRecordStatus(ctx context.Context, id string, req UpdateStatusRequest) error
	DeleteRecord(ctx context.Context, id string) error

	CreateRule(ctx context.Context, req CreateRuleRequest) (RuleResponse, error)
	ListRules(ctx context.Context) ([]RuleResponse, error)
	UpdateRule(ctx context.Context, req UpdateRuleRequest) error
	DeleteRule(ctx context.Context, id string) error
}
