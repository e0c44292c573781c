package payroll

import "context"

type PayrollRepository interface {
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetLineItems(ctx context.Context, recordID string) ([]PayrollLineItem, error)
	List(ctx context.Context, filter ListPayrollFilter) ([]PayrollRecord, int64, error)

	// CreateWithLineItems inserts the record and its line items. Callers run
	// it inside a transaction so a failed line-item insert rolls back the
	// record. A unique violation on (employee_id, period_start, period_end)
	// surfaces as ErrPayrollRecordAlreadyExists.
	CreateWithLineItems(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	UpdateStatus(ctx context.Context, id string, status RecordStatus) error
	Delete(ctx context.Context, id string) error
}

type RuleRepository interface {
	GetByID(ctx context.Context, id string) (CompensationRule, error)
	ListActive(ctx context.Context) ([]CompensationRule, error)
	List(ctx context.Context) ([]CompensationRule, error)
	Create(ctx context.Context, rule CompensationRule) (CompensationRule, error)
	Update(ctx context.Context, req UpdateRuleRequest) error
	Delete(ctx context.Context, id string) error
}
