package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this employee and period")
	ErrRuleNotFound               = errors.New("compensation rule not found")
	ErrRuleNameExists             = errors.New("compensation rule name already exists")
	ErrInvalidRuleType            = errors.New("rule type must be allowance or deduction")
	ErrInvalidRuleKind            = errors.New("rule kind must be fixed, percentage or progressive_tax")
	ErrNoBaseSalary               = errors.New("employee has no base salary configured")
	ErrEmployeeNotActive          = errors.New("employee is not active")
	ErrInvalidPeriod              = errors.New("period start must not be after period end")
	ErrInvalidStatusTransition    = errors.New("invalid payroll status transition")
	ErrNoEmployeesSelected        = errors.New("no employees selected for payroll generation")
)
