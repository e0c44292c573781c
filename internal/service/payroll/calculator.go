package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workforcehq/ems-backend-go/internal/domain/attendance"
	"github.com/workforcehq/ems-backend-go/internal/domain/payroll"
)

// Calculator computes one employee's pay for a period. It is pure: all
// inputs arrive as arguments, the payroll constants come from the Config
// set at construction, and nothing touches the database.
type Calculator struct {
	cfg payroll.Config
}

func NewCalculator(cfg payroll.Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Computation is the full output of one payroll calculation, ready to be
// persisted as a record with ordered line items.
type Computation struct {
	WorkingDays     int
	DailyRate       decimal.Decimal
	HourlyRate      decimal.Decimal
	TotalHours      decimal.Decimal
	OvertimePay     decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	GrossPay        decimal.Decimal
	NetPay          decimal.Decimal
	LineItems       []payroll.PayrollLineItem
}

// WorkingDays counts weekdays in [start, end] inclusive. A range with no
// weekdays yields 1 so the daily rate never divides by zero.
func WorkingDays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	if days < 1 {
		return 1
	}
	return days
}

// Compute runs the full calculation for one employee.
//
// Rates derive from the base salary spread over the period's working
// days. Overtime pays at the configured multiplier of the hourly rate.
// Allowances and deductions come from the active compensation rules;
// attendance-driven deductions (absence, half day, late) apply before
// the configured ones. Net pay is gross minus deductions and is not
// clamped at zero.
func (c *Calculator) Compute(
	baseSalary decimal.Decimal,
	agg attendance.Aggregate,
	rules []payroll.CompensationRule,
	periodStart, periodEnd time.Time,
) Computation {
	workingDays := WorkingDays(periodStart, periodEnd)

	dailyRate := baseSalary.Div(decimal.NewFromInt(int64(workingDays)))
	hourlyRate := dailyRate.Div(c.cfg.RegularHoursPerDay)

	overtimePay := agg.OvertimeHours.Mul(hourlyRate).Mul(c.cfg.OvertimeMultiplier)

	var items []payroll.PayrollLineItem
	addItem := func(itemType payroll.LineItemType, name string, amount decimal.Decimal) {
		items = append(items, payroll.PayrollLineItem{
			ItemType: itemType,
			Name:     name,
			Amount:   amount,
			Position: len(items),
		})
	}

	totalAllowances := decimal.Zero
	for _, rule := range rules {
		if rule.RuleType != payroll.RuleTypeAllowance {
			continue
		}
		amount := c.ruleAmount(rule, baseSalary, decimal.Zero)
		totalAllowances = totalAllowances.Add(amount)
		if amount.IsPositive() {
			addItem(payroll.LineItemAllowance, rule.Name, amount)
		}
	}

	grossPay := baseSalary.Add(overtimePay).Add(totalAllowances)

	if overtimePay.IsPositive() {
		addItem(payroll.LineItemOvertime, "Overtime Pay", overtimePay)
	}

	absenceDeduction := decimal.NewFromInt(int64(agg.AbsentDays)).Mul(dailyRate)
	halfDayDeduction := decimal.NewFromInt(int64(agg.HalfDays)).Mul(dailyRate.Div(decimal.NewFromInt(2)))
	lateDeduction := decimal.NewFromInt(int64(agg.LateMinutes)).Div(decimal.NewFromInt(60)).Mul(hourlyRate)

	totalDeductions := absenceDeduction.Add(halfDayDeduction).Add(lateDeduction)

	if absenceDeduction.IsPositive() {
		addItem(payroll.LineItemDeduction, "Absence", absenceDeduction)
	}
	if halfDayDeduction.IsPositive() {
		addItem(payroll.LineItemDeduction, "Half Day", halfDayDeduction)
	}
	if lateDeduction.IsPositive() {
		addItem(payroll.LineItemDeduction, "Late", lateDeduction)
	}

	for _, rule := range rules {
		if rule.RuleType != payroll.RuleTypeDeduction {
			continue
		}
		amount := c.ruleAmount(rule, baseSalary, grossPay)
		totalDeductions = totalDeductions.Add(amount)
		if amount.IsPositive() {
			addItem(payroll.LineItemDeduction, rule.Name, amount)
		}
	}

	netPay := grossPay.Sub(totalDeductions)

	return Computation{
		WorkingDays:     workingDays,
		DailyRate:       dailyRate,
		HourlyRate:      hourlyRate,
		TotalHours:      agg.TotalHours,
		OvertimePay:     overtimePay,
		TotalAllowances: totalAllowances,
		TotalDeductions: totalDeductions,
		GrossPay:        grossPay,
		NetPay:          netPay,
		LineItems:       items,
	}
}

func (c *Calculator) ruleAmount(rule payroll.CompensationRule, baseSalary, grossPay decimal.Decimal) decimal.Decimal {
	switch rule.Kind {
	case payroll.RuleKindFixed:
		return rule.Amount
	case payroll.RuleKindPercentage:
		return rule.Amount.Div(decimal.NewFromInt(100)).Mul(baseSalary)
	case payroll.RuleKindProgressiveTax:
		return c.WithholdingTax(grossPay)
	}
	return decimal.Zero
}

// WithholdingTax annualizes the monthly gross, walks the bracket table,
// and returns the monthly share of the annual tax.
func (c *Calculator) WithholdingTax(monthlyGross decimal.Decimal) decimal.Decimal {
	annualGross := monthlyGross.Mul(c.cfg.AnnualizationFactor)

	for _, bracket := range c.cfg.TaxBrackets {
		if bracket.UpTo != nil && annualGross.GreaterThan(*bracket.UpTo) {
			continue
		}
		annualTax := bracket.Base.Add(annualGross.Sub(bracket.Over).Mul(bracket.Rate))
		return annualTax.Div(c.cfg.AnnualizationFactor)
	}

	return decimal.Zero
}
