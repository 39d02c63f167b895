// Package amortize solves the fixed-payment loan relationship between
// principal, annual rate, number of monthly payments and payment amount.
//
// Every solver takes the three known values and returns the fourth. The
// boolean result is the only failure signal: false means the inputs cannot
// produce a loan and the returned Result is the zero value.
package amortize

import "math"

type Field string

const (
	FieldPrincipal   Field = "principal"
	FieldAnnualRate  Field = "annual_rate"
	FieldNumPayments Field = "num_payments"
	FieldPayment     Field = "payment"
)

const (
	// BisectionIterations caps the rate search.
	BisectionIterations = 100
	// BisectionTolerance is the absolute payment error that stops the search early.
	BisectionTolerance = 0.01

	periodsPerYear = 12.0
)

// Result is one solved field plus the loan totals.
// TotalInterest is always TotalPaid - principal.
type Result struct {
	Solved        Field   `json:"solved_field"`
	Value         float64 `json:"value"`
	TotalPaid     float64 `json:"total_paid"`
	TotalInterest float64 `json:"total_interest"`
}

// PeriodicRate converts an annual percentage rate to a monthly fraction.
func PeriodicRate(annualRate float64) float64 {
	return annualRate / 100.0 / periodsPerYear
}

// PaymentFor returns the level payment for a periodic rate r over n periods.
// r == 0, or an r too small to move 1+r, is treated as an interest-free loan.
// The discount form stays finite for long terms where (1+r)^n overflows.
func PaymentFor(principal, r, n float64) float64 {
	if r == 0 {
		return principal / n
	}
	discount := 1.0 - math.Pow(1.0+r, -n)
	if discount == 0 {
		return principal / n
	}
	return principal * r / discount
}

func SolveForPrincipal(annualRate, numPayments, payment float64) (Result, bool) {
	if !finite(annualRate, numPayments, payment) {
		return Result{}, false
	}
	r := PeriodicRate(annualRate)
	n := numPayments
	if r <= 0 || n <= 0 || payment <= 0 {
		return Result{}, false
	}

	principal := payment * ((1.0 - math.Pow(1.0+r, -n)) / r)
	return totals(FieldPrincipal, principal, principal, payment, n)
}

// SolveForRate bisects the periodic rate over [0, 1]. The payment must exceed
// principal/n, otherwise the loan needs a zero or negative rate.
func SolveForRate(principal, numPayments, payment float64) (Result, bool) {
	if !finite(principal, numPayments, payment) {
		return Result{}, false
	}
	n := numPayments
	if principal <= 0 || n <= 0 || payment <= 0 {
		return Result{}, false
	}
	if payment <= principal/n {
		return Result{}, false
	}

	low, high, rate := 0.0, 1.0, 0.0
	for i := 0; i < BisectionIterations; i++ {
		rate = (low + high) / 2.0

		computed := PaymentFor(principal, rate, n)
		if math.Abs(computed-payment) < BisectionTolerance {
			break
		}
		if computed < payment {
			low = rate
		} else {
			high = rate
		}
	}

	annual := rate * periodsPerYear * 100.0
	return totals(FieldAnnualRate, annual, principal, payment, n)
}

// SolveForNumPayments returns a real-valued period count. The payment must
// exceed the interest-only amount principal*r or the loan never terminates.
func SolveForNumPayments(principal, annualRate, payment float64) (Result, bool) {
	if !finite(principal, annualRate, payment) {
		return Result{}, false
	}
	r := PeriodicRate(annualRate)
	if principal <= 0 || r <= 0 || payment <= 0 {
		return Result{}, false
	}
	if payment <= principal*r {
		return Result{}, false
	}

	n := math.Log(payment/(payment-principal*r)) / math.Log(1.0+r)
	return totals(FieldNumPayments, n, principal, payment, n)
}

func SolveForPayment(principal, annualRate, numPayments float64) (Result, bool) {
	if !finite(principal, annualRate, numPayments) {
		return Result{}, false
	}
	r := PeriodicRate(annualRate)
	n := numPayments
	if principal <= 0 || r <= 0 || n <= 0 {
		return Result{}, false
	}

	payment := PaymentFor(principal, r, n)
	return totals(FieldPayment, payment, principal, payment, n)
}

// totals fails when any reported number overflowed, so callers never see
// NaN or Inf.
func totals(field Field, value, principal, payment, n float64) (Result, bool) {
	totalPaid := payment * n
	res := Result{
		Solved:        field,
		Value:         value,
		TotalPaid:     totalPaid,
		TotalInterest: totalPaid - principal,
	}
	if !finite(res.Value, res.TotalPaid, res.TotalInterest) {
		return Result{}, false
	}
	return res, true
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
