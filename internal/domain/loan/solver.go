package loan

import "loan-calculator/pkg/amortize"

// Solver derives the fourth loan variable from the other three.
// A false result means the values cannot describe a loan.
type Solver interface {
	SolveForPrincipal(annualRate, numPayments, payment float64) (amortize.Result, bool)
	SolveForRate(principal, numPayments, payment float64) (amortize.Result, bool)
	SolveForNumPayments(principal, annualRate, payment float64) (amortize.Result, bool)
	SolveForPayment(principal, annualRate, numPayments float64) (amortize.Result, bool)
}

var _ Solver = amortize.Calculator{}
