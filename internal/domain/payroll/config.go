package payroll

import "github.com/shopspring/decimal"

// Config carries the payroll constants. It is built once at startup and
// injected into the calculator; nothing mutates it after construction.
type Config struct {
	RegularHoursPerDay  decimal.Decimal
	OvertimeMultiplier  decimal.Decimal
	WorkStartHour       int
	WorkStartMinute     int
	AnnualizationFactor decimal.Decimal
	TaxBrackets         []TaxBracket
}

// TaxBracket is one row of the progressive withholding table, applied to
// annualized gross pay. UpTo nil marks the open-ended top bracket.
// Tax owed = Base + (annualGross - Over) * Rate.
type TaxBracket struct {
	UpTo *decimal.Decimal
	Base decimal.Decimal
	Rate decimal.Decimal
	Over decimal.Decimal
}

func DefaultConfig() Config {
	upTo := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return Config{
		RegularHoursPerDay:  decimal.NewFromInt(8),
		OvertimeMultiplier:  decimal.NewFromFloat(1.5),
		WorkStartHour:       8,
		WorkStartMinute:     0,
		AnnualizationFactor: decimal.NewFromInt(12),
		TaxBrackets: []TaxBracket{
			{UpTo: upTo(250000), Base: decimal.Zero, Rate: decimal.Zero, Over: decimal.Zero},
			{UpTo: upTo(400000), Base: decimal.Zero, Rate: decimal.NewFromFloat(0.15), Over: decimal.NewFromInt(250000)},
			{UpTo: upTo(800000), Base: decimal.NewFromInt(22500), Rate: decimal.NewFromFloat(0.20), Over: decimal.NewFromInt(400000)},
			{UpTo: upTo(2000000), Base: decimal.NewFromInt(102500), Rate: decimal.NewFromFloat(0.25), Over: decimal.NewFromInt(800000)},
			{UpTo: upTo(8000000), Base: decimal.NewFromInt(402500), Rate: decimal.NewFromFloat(0.30), Over: decimal.NewFromInt(2000000)},
			{UpTo: nil, Base: decimal.NewFromInt(2202500), Rate: decimal.NewFromFloat(0.35), Over: decimal.NewFromInt(8000000)},
		},
	}
}
