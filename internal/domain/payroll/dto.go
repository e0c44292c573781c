package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/ems-backend-go/internal/pkg/validator"
)

type GeneratePayrollRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
}

type ParsedGenerateRequest struct {
	EmployeeIDs []string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

func (r *GeneratePayrollRequest) Validate() (ParsedGenerateRequest, error) {
	var errs validator.ValidationErrors
	parsed := ParsedGenerateRequest{EmployeeIDs: r.EmployeeIDs}

	if len(r.EmployeeIDs) == 0 {
		return ParsedGenerateRequest{}, ErrNoEmployeesSelected
	}
	for _, id := range r.EmployeeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "contains an invalid UUID: " + id})
			break
		}
	}
	start, ok := validator.IsValidDate(r.PeriodStart)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be YYYY-MM-DD"})
	} else {
		parsed.PeriodStart = start
	}
	end, ok := validator.IsValidDate(r.PeriodEnd)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be YYYY-MM-DD"})
	} else {
		parsed.PeriodEnd = end
	}

	if len(errs) > 0 {
		return ParsedGenerateRequest{}, errs
	}
	if parsed.PeriodStart.After(parsed.PeriodEnd) {
		return ParsedGenerateRequest{}, ErrInvalidPeriod
	}
	return parsed, nil
}

type CreateRuleRequest struct {
	Name     string          `json:"name"`
	RuleType string          `json:"rule_type"`
	Kind     string          `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	IsActive *bool           `json:"is_active,omitempty"`
}

func (r *CreateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !IsValidRuleType(RuleType(r.RuleType)) {
		errs = append(errs, validator.ValidationError{Field: "rule_type", Message: "must be allowance or deduction"})
	}
	if !IsValidRuleKind(RuleKind(r.Kind)) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be fixed, percentage or progressive_tax"})
	}
	if RuleKind(r.Kind) == RuleKindProgressiveTax && RuleType(r.RuleType) != RuleTypeDeduction {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "progressive_tax rules must be deductions"})
	}
	if RuleKind(r.Kind) != RuleKindProgressiveTax && r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRuleRequest struct {
	ID       string
	Name     *string          `json:"name,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	if !IsValidRecordStatus(RecordStatus(r.Status)) {
		return validator.ValidationErrors{{Field: "status", Message: "must be draft, pending_approval, approved, processed or cancelled"}}
	}
	return nil
}

type ListPayrollFilter struct {
	EmployeeID  string
	Status      string
	Statuses    []string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Page        int
	Limit       int
}

type LineItemResponse struct {
	ItemType string          `json:"item_type"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
}

type PayrollRecordResponse struct {
	ID              string             `json:"id"`
	EmployeeID      string             `json:"employee_id"`
	EmployeeName    string             `json:"employee_name,omitempty"`
	PeriodStart     string             `json:"period_start"`
	PeriodEnd       string             `json:"period_end"`
	WorkingDays     int                `json:"working_days"`
	BaseSalary      decimal.Decimal    `json:"base_salary"`
	TotalHours      decimal.Decimal    `json:"total_hours"`
	OvertimePay     decimal.Decimal    `json:"overtime_pay"`
	TotalAllowances decimal.Decimal    `json:"total_allowances"`
	TotalDeductions decimal.Decimal    `json:"total_deductions"`
	GrossPay        decimal.Decimal    `json:"gross_pay"`
	NetPay          decimal.Decimal    `json:"net_pay"`
	Status          string             `json:"status"`
	GeneratedBy     string             `json:"generated_by"`
	LineItems       []LineItemResponse `json:"line_items,omitempty"`
}

type RuleResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	RuleType string          `json:"rule_type"`
	Kind     string          `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	IsActive bool            `json:"is_active"`
}

type ListPayrollResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}
