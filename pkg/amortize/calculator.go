package amortize

// Calculator exposes the package solvers behind a value that can be injected
// where a solver capability is expected.
type Calculator struct{}

func NewCalculator() Calculator { return Calculator{} }

func (Calculator) SolveForPrincipal(annualRate, numPayments, payment float64) (Result, bool) {
	return SolveForPrincipal(annualRate, numPayments, payment)
}

func (Calculator) SolveForRate(principal, numPayments, payment float64) (Result, bool) {
	return SolveForRate(principal, numPayments, payment)
}

func (Calculator) SolveForNumPayments(principal, annualRate, payment float64) (Result, bool) {
	return SolveForNumPayments(principal, annualRate, payment)
}

func (Calculator) SolveForPayment(principal, annualRate, numPayments float64) (Result, bool) {
	return SolveForPayment(principal, annualRate, numPayments)
}
