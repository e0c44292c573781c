package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompensationRule is a configured allowance or deduction applied during
// payroll generation. Percentage rules are computed against base salary;
// progressive tax rules ignore Amount and run the bracket table against
// gross pay.
type CompensationRule struct {
	ID        string
	Name      string
	RuleType  RuleType
	Kind      RuleKind
	Amount    decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RuleType string

const (
	RuleTypeAllowance RuleType = "allowance"
	RuleTypeDeduction RuleType = "deduction"
)

func IsValidRuleType(t RuleType) bool {
	return t == RuleTypeAllowance || t == RuleTypeDeduction
}

type RuleKind string

const (
	RuleKindFixed          RuleKind = "fixed"
	RuleKindPercentage     RuleKind = "percentage"
	RuleKindProgressiveTax RuleKind = "progressive_tax"
)

func IsValidRuleKind(k RuleKind) bool {
	switch k {
	case RuleKindFixed, RuleKindPercentage, RuleKindProgressiveTax:
		return true
	}
	return false
}

type PayrollRecord struct {
	ID              string
	EmployeeID      string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	WorkingDays     int
	BaseSalary      decimal.Decimal
	TotalHours      decimal.Decimal
	OvertimePay     decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	GrossPay        decimal.Decimal
	NetPay          decimal.Decimal
	Status          RecordStatus
	GeneratedBy     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LineItems       []PayrollLineItem
}

type RecordStatus string

const (
	RecordStatusDraft           RecordStatus = "draft"
	RecordStatusPendingApproval RecordStatus = "pending_approval"
	RecordStatusApproved        RecordStatus = "approved"
	RecordStatusProcessed       RecordStatus = "processed"
	RecordStatusCancelled       RecordStatus = "cancelled"
)

func IsValidRecordStatus(s RecordStatus) bool {
	switch s {
	case RecordStatusDraft, RecordStatusPendingApproval, RecordStatusApproved, RecordStatusProcessed, RecordStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the record lifecycle:
// draft -> pending_approval -> approved -> processed, with cancellation
// allowed until a record is processed.
func (s RecordStatus) CanTransitionTo(next RecordStatus) bool {
	switch s {
	case RecordStatusDraft:
		return next == RecordStatusPendingApproval || next == RecordStatusCancelled
	case RecordStatusPendingApproval:
		return next == RecordStatusApproved || next == RecordStatusCancelled
	case RecordStatusApproved:
		return next == RecordStatusProcessed || next == RecordStatusCancelled
	}
	return false
}

type PayrollLineItem struct {
	ID              string
	PayrollRecordID string
	ItemType        LineItemType
	Name            string
	Amount          decimal.Decimal
	Position        int
}

type LineItemType string

const (
	LineItemAllowance LineItemType = "allowance"
	LineItemOvertime  LineItemType = "overtime"
	LineItemDeduction LineItemType = "deduction"
)

// BatchResult accumulates the outcome of a payroll generation run. One
// employee failing never aborts the batch; TotalAmount sums net pay of
// successful records only.
type BatchResult struct {
	Generated   int             `json:"generated"`
	Failed      int             `json:"failed"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Records     []PayrollRecord `json:"-"`
	Errors      []BatchError    `json:"errors"`
}

type BatchError struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

func (b *BatchResult) AddSuccess(record PayrollRecord) {
	b.Generated++
	b.TotalAmount = b.TotalAmount.Add(record.NetPay)
	b.Records = append(b.Records, record)
}

func (b *BatchResult) AddFailure(employeeID string, err error) {
	b.Failed++
	b.Errors = append(b.Errors, BatchError{EmployeeID: employeeID, Message: err.Error()})
}
