package loan

import (
	"github.com/shopspring/decimal"

	"loan-calculator/pkg/amortize"
)

const DefaultPeriodPrecision = 2

// Formatter renders solver output for display. Only presentation rounds;
// the numeric results stay unrounded.
type Formatter struct {
	PeriodPrecision int32
}

func (f Formatter) Currency(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

func (f Formatter) Rate(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

func (f Formatter) Periods(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(f.PeriodPrecision)
}

func (f Formatter) Value(field amortize.Field, v float64) string {
	switch field {
	case amortize.FieldAnnualRate:
		return f.Rate(v)
	case amortize.FieldNumPayments:
		return f.Periods(v)
	default:
		return f.Currency(v)
	}
}
