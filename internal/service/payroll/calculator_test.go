package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/ems-backend-go/internal/domain/attendance"
	"github.com/workforcehq/ems-backend-go/internal/domain/payroll"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// September 2025 runs Monday the 1st through Tuesday the 30th and contains
// exactly 22 weekdays, which makes the rate math come out even for a
// 22,000 base salary.
var (
	sepStart = date(2025, time.September, 1)
	sepEnd   = date(2025, time.September, 30)
)

func TestWorkingDays(t *testing.T) {
	assert.Equal(t, 22, WorkingDays(sepStart, sepEnd))

	// Single weekday
	assert.Equal(t, 1, WorkingDays(date(2025, time.September, 1), date(2025, time.September, 1)))

	// Sat 6th through Sun 7th has no weekdays; floor at 1 so the daily
	// rate never divides by zero.
	assert.Equal(t, 1, WorkingDays(date(2025, time.September, 6), date(2025, time.September, 7)))

	// Inverted range also floors at 1.
	assert.Equal(t, 1, WorkingDays(sepEnd, sepStart))

	// Fri through Mon spans a weekend: 2 weekdays.
	assert.Equal(t, 2, WorkingDays(date(2025, time.September, 5), date(2025, time.September, 8)))
}

func TestCompute_RatesAndOvertime(t *testing.T) {
	calc := NewCalculator(payroll.DefaultConfig())

	agg := attendance.Aggregate{
		TotalHours:    decimal.NewFromInt(176),
		OvertimeHours: decimal.NewFromInt(10),
	}

	comp := calc.Compute(decimal.NewFromInt(22000), agg, nil, sepStart, sepEnd)

	assert.Equal(t, 22, comp.WorkingDays)
	assert.True(t, comp.DailyRate.Equal(decimal.NewFromInt(1000)), "daily rate = %s", comp.DailyRate)
	assert.True(t, comp.HourlyRate.Equal(decimal.NewFromInt(125)), "hourly rate = %s", comp.HourlyRate)

	// 10h x 125/h x 1.5
	assert.True(t, comp.OvertimePay.Equal(decimal.NewFromInt(1875)), "overtime = %s", comp.OvertimePay)
	assert.True(t, comp.GrossPay.Equal(decimal.NewFromInt(23875)), "gross = %s", comp.GrossPay)
	assert.True(t, comp.NetPay.Equal(decimal.NewFromInt(23875)), "net = %s", comp.NetPay)

	require.Len(t, comp.LineItems, 1)
	assert.Equal(t, payroll.LineItemOvertime, comp.LineItems[0].ItemType)
	assert.Equal(t, "Overtime Pay", comp.LineItems[0].Name)
}

func TestCompute_AttendanceDeductions(t *testing.T) {
	calc := NewCalculator(payroll.DefaultConfig())

	agg := attendance.Aggregate{
		AbsentDays:  2,
		HalfDays:    3,
		LateMinutes: 90,
	}

	comp := calc.Compute(decimal.NewFromInt(22000), agg, nil, sepStart, sepEnd)

	// absence 2 x 1000, half day 3 x 500, late 1.5h x 125
	expected := decimal.NewFromFloat(2000 + 1500 + 187.5)
	assert.True(t, comp.TotalDeductions.Equal(expected), "deductions = %s", comp.TotalDeductions)
	assert.True(t, comp.NetPay.Equal(decimal.NewFromInt(22000).Sub(expected)), "net = %s", comp.NetPay)

	require.Len(t, comp.LineItems, 3)
	assert.Equal(t, "Absence", comp.LineItems[0].Name)
	assert.Equal(t, "Half Day", comp.LineItems[1].Name)
	assert.Equal(t, "Late", comp.LineItems[2].Name)
	for i, item := range comp.LineItems {
		assert.Equal(t, payroll.LineItemDeduction, item.ItemType)
		assert.Equal(t, i, item.Position)
	}
}

func TestCompute_AllowancesAndDeductionRules(t *testing.T) {
	calc := NewCalculator(payroll.DefaultConfig())

	rules := []payroll.CompensationRule{
		{Name: "Rice Subsidy", RuleType: payroll.RuleTypeAllowance, Kind: payroll.RuleKindFixed, Amount: decimal.NewFromInt(1500)},
		{Name: "Transport", RuleType: payroll.RuleTypeAllowance, Kind: payroll.RuleKindPercentage, Amount: decimal.NewFromInt(10)},
		{Name: "HMO", RuleType: payroll.RuleTypeDeduction, Kind: payroll.RuleKindFixed, Amount: decimal.NewFromInt(500)},
		{Name: "Pension", RuleType: payroll.RuleTypeDeduction, Kind: payroll.RuleKindPercentage, Amount: decimal.NewFromInt(5)},
	}

	agg := attendance.Aggregate{OvertimeHours: decimal.NewFromInt(4)}

	comp := calc.Compute(decimal.NewFromInt(22000), agg, rules, sepStart, sepEnd)

	// allowances: 1500 fixed + 10% of 22000 = 3700
	assert.True(t, comp.TotalAllowances.Equal(decimal.NewFromInt(3700)), "allowances = %s", comp.TotalAllowances)

	// gross = 22000 + 4x125x1.5 + 3700
	assert.True(t, comp.GrossPay.Equal(decimal.NewFromInt(26450)), "gross = %s", comp.GrossPay)

	// deductions: 500 fixed + 5% of base = 1600
	assert.True(t, comp.TotalDeductions.Equal(decimal.NewFromInt(1600)), "deductions = %s", comp.TotalDeductions)
	assert.True(t, comp.NetPay.Equal(decimal.NewFromInt(24850)), "net = %s", comp.NetPay)

	// Order: allowances in rule order, then overtime, then deduction rules.
	require.Len(t, comp.LineItems, 5)
	assert.Equal(t, "Rice Subsidy", comp.LineItems[0].Name)
	assert.Equal(t, "Transport", comp.LineItems[1].Name)
	assert.Equal(t, "Overtime Pay", comp.LineItems[2].Name)
	assert.Equal(t, "HMO", comp.LineItems[3].Name)
	assert.Equal(t, "Pension", comp.LineItems[4].Name)
	for i, item := range comp.LineItems {
		assert.Equal(t, i, item.Position)
	}
}

func TestCompute_ZeroAmountItemsOmitted(t *testing.T) {
	calc := NewCalculator(payroll.DefaultConfig())

	rules := []payroll.CompensationRule{
		{Name: "Bonus", RuleType: payroll.RuleTypeAllowance, Kind: payroll.RuleKindFixed, Amount: decimal.Zero},
		{Name: "Union Dues", RuleType: payroll.RuleTypeDeduction, Kind: payroll.RuleKindFixed, Amount: decimal.Zero},
	}

	comp := calc.Compute(decimal.NewFromInt(22000), attendance.Aggregate{}, rules, sepStart, sepEnd)

	// No overtime, no attendance deductions, zero-amount rules dropped.
	assert.Empty(t, comp.LineItems)
	assert.True(t, comp.NetPay.Equal(decimal.NewFromInt(22000)))
}

func TestCompute_ProgressiveTaxUsesGross(t *testing.T) {
	calc := NewCalculator(payroll.DefaultConfig())

	rules := []payroll.CompensationRule{
		{Name: "Allowance", RuleType: payroll.RuleTypeAllowance, Kind: payroll.RuleKindFixed, Amount: decimal.NewFromInt(3000)},
		{Name: "Withholding Tax", RuleType: payroll.RuleTypeDeduction, Kind: payroll.RuleKindProgressiveTax},
	}

	comp := calc.Compute(decimal.NewFromInt(22000), attendance.Aggregate{}, rules, sepStart, sepEnd)

	// Tax runs against gross (25000), not base: annual 300000 falls in the
	// 15% bracket: (300000 - 250000) x 0.15 / 12 = 625.
	assert.True(t, comp.GrossPay.Equal(decimal.NewFromInt(25000)), "gross = %s", comp.GrossPay)
	assert.True(t, comp.TotalDeductions.Equal(decimal.NewFromInt(625)), "tax = %s", comp.TotalDeductions)
	assert.True(t, comp.NetPay.Equal(decimal.NewFromInt(24375)), "net = %s", comp.NetPay)

	require.Len(t, comp.LineItems, 2)
	assert.Equal(t, "Withholding Tax", comp.LineItems[1].Name)
}

func TestCompute_NegativeNetPayNotClamped(t *testing.T) {
	calc := NewCalculator(payroll.DefaultConfig())

	// 30 absent days at 1000/day out-deducts the 22000 base.
	agg := attendance.Aggregate{AbsentDays: 30}

	comp := calc.Compute(decimal.NewFromInt(22000), agg, nil, sepStart, sepEnd)

	assert.True(t, comp.NetPay.IsNegative(), "net = %s", comp.NetPay)
	assert.True(t, comp.NetPay.Equal(decimal.NewFromInt(-8000)), "net = %s", comp.NetPay)
}

func TestWithholdingTax_Brackets(t *testing.T) {
	calc := NewCalculator(payroll.DefaultConfig())
	twelve := decimal.NewFromInt(12)

	annualTax := func(base, over int64, rate float64, annual decimal.Decimal) decimal.Decimal {
		return decimal.NewFromInt(base).
			Add(annual.Sub(decimal.NewFromInt(over)).Mul(decimal.NewFromFloat(rate))).
			Div(twelve)
	}

	cases := []struct {
		name    string
		monthly decimal.Decimal
		want    func(annual decimal.Decimal) decimal.Decimal
	}{
		{"exempt", decimal.NewFromInt(20000), func(a decimal.Decimal) decimal.Decimal {
			return decimal.Zero
		}},
		{"15pct bracket", decimal.NewFromInt(30000), func(a decimal.Decimal) decimal.Decimal {
			return annualTax(0, 250000, 0.15, a)
		}},
		{"20pct bracket", decimal.NewFromInt(50000), func(a decimal.Decimal) decimal.Decimal {
			return annualTax(22500, 400000, 0.20, a)
		}},
		{"25pct bracket", decimal.NewFromInt(100000), func(a decimal.Decimal) decimal.Decimal {
			return annualTax(102500, 800000, 0.25, a)
		}},
		{"30pct bracket", decimal.NewFromInt(300000), func(a decimal.Decimal) decimal.Decimal {
			return annualTax(402500, 2000000, 0.30, a)
		}},
		{"35pct bracket", decimal.NewFromInt(700000), func(a decimal.Decimal) decimal.Decimal {
			return annualTax(2202500, 8000000, 0.35, a)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			annual := tc.monthly.Mul(twelve)
			got := calc.WithholdingTax(tc.monthly)
			want := tc.want(annual)
			assert.True(t, got.Equal(want), "monthly %s: got %s, want %s", tc.monthly, got, want)
		})
	}
}

// Bracket edges are inclusive: an annual gross landing exactly on a
// bracket's upper bound is taxed inside that bracket, not the next one.
func TestWithholdingTax_BracketBoundaries(t *testing.T) {
	cfg := payroll.DefaultConfig()
	// Factor 1 lets the annual boundary values feed in directly.
	cfg.AnnualizationFactor = decimal.NewFromInt(1)
	calc := NewCalculator(cfg)

	cases := []struct {
		annual int64
		want   decimal.Decimal
	}{
		{250000, decimal.Zero},
		{400000, decimal.NewFromInt(22500)},
		{800000, decimal.NewFromInt(102500)},
		{2000000, decimal.NewFromInt(402500)},
		{8000000, decimal.NewFromInt(2202500)},
	}
	for _, tc := range cases {
		got := calc.WithholdingTax(decimal.NewFromInt(tc.annual))
		assert.True(t, got.Equal(tc.want), "annual %d: got %s, want %s", tc.annual, got, tc.want)
	}

	// One peso over the exempt cap crosses into the 15% bracket.
	got := calc.WithholdingTax(decimal.NewFromInt(250001))
	assert.True(t, got.Equal(decimal.NewFromFloat(0.15)), "got %s", got)

	// Past the top bound the open-ended 35% bracket takes over.
	got = calc.WithholdingTax(decimal.NewFromInt(8000001))
	assert.True(t, got.Equal(decimal.NewFromFloat(2202500.35)), "got %s", got)
}

func TestWithholdingTax_ZeroGross(t *testing.T) {
	calc := NewCalculator(payroll.DefaultConfig())
	assert.True(t, calc.WithholdingTax(decimal.Zero).IsZero())
}
