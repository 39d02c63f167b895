package loan

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	domain "loan-calculator/internal/domain/loan"
	"loan-calculator/pkg/amortize"
)

const (
	msgFillThree      = "please fill in exactly 3 fields and leave 1 empty"
	msgInvalidValues  = "invalid input values, please check your entries"
	msgPaymentTooLow  = "payment amount is too low"
	msgNeverPaidOff   = "payment amount is too low to pay off the loan"
	msgNotComputable  = "loan cannot be computed from the given values"
	msgPositiveFormat = "%s must be greater than zero"
)

type Usecase struct {
	solver domain.Solver
	format Formatter
	log    logrus.FieldLogger
}

func NewUsecase(s domain.Solver, f Formatter, log logrus.FieldLogger) *Usecase {
	return &Usecase{solver: s, format: f, log: log}
}

// Parse trims the raw fields, requires exactly three of them and converts
// them to numbers.
func (u *Usecase) Parse(in CalculateInput) (domain.Inputs, error) {
	raw := []string{
		strings.TrimSpace(in.Principal),
		strings.TrimSpace(in.AnnualRate),
		strings.TrimSpace(in.NumPayments),
		strings.TrimSpace(in.Payment),
	}
	filled := 0
	for _, s := range raw {
		if s != "" {
			filled++
		}
	}
	if filled != 3 {
		return domain.Inputs{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msgFillThree)
	}

	vals := make([]*float64, len(raw))
	for i, s := range raw {
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.Inputs{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msgInvalidValues)
		}
		vals[i] = &v
	}
	return domain.Inputs{Principal: vals[0], AnnualRate: vals[1], NumPayments: vals[2], Payment: vals[3]}, nil
}

func (u *Usecase) Calculate(ctx context.Context, in CalculateInput) (*ResultDTO, error) {
	parsed, err := u.Parse(in)
	if err != nil {
		return nil, err
	}
	return u.Solve(ctx, parsed)
}

// Solve dispatches to the solver for the one missing field.
func (u *Usecase) Solve(ctx context.Context, in domain.Inputs) (*ResultDTO, error) {
	field, err := in.Missing()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msgFillThree)
	}

	var (
		res    amortize.Result
		ok     bool
		filled FilledInputs
	)
	switch field {
	case amortize.FieldPrincipal:
		rate, n, pmt := *in.AnnualRate, *in.NumPayments, *in.Payment
		if rate <= 0 || n <= 0 || pmt <= 0 {
			return nil, u.infeasible(field, fmt.Sprintf(msgPositiveFormat, "interest rate, number of payments and payment amount"))
		}
		res, ok = u.solver.SolveForPrincipal(rate, n, pmt)
		filled = FilledInputs{Principal: res.Value, AnnualRate: rate, NumPayments: n, Payment: pmt}

	case amortize.FieldAnnualRate:
		pv, n, pmt := *in.Principal, *in.NumPayments, *in.Payment
		if pv <= 0 || n <= 0 || pmt <= 0 {
			return nil, u.infeasible(field, fmt.Sprintf(msgPositiveFormat, "loan amount, number of payments and payment amount"))
		}
		if pmt <= pv/n {
			return nil, u.infeasible(field, msgPaymentTooLow)
		}
		res, ok = u.solver.SolveForRate(pv, n, pmt)
		filled = FilledInputs{Principal: pv, AnnualRate: res.Value, NumPayments: n, Payment: pmt}

	case amortize.FieldNumPayments:
		pv, rate, pmt := *in.Principal, *in.AnnualRate, *in.Payment
		if pv <= 0 || rate <= 0 || pmt <= 0 {
			return nil, u.infeasible(field, fmt.Sprintf(msgPositiveFormat, "loan amount, interest rate and payment amount"))
		}
		if pmt <= pv*amortize.PeriodicRate(rate) {
			return nil, u.infeasible(field, msgNeverPaidOff)
		}
		res, ok = u.solver.SolveForNumPayments(pv, rate, pmt)
		filled = FilledInputs{Principal: pv, AnnualRate: rate, NumPayments: res.Value, Payment: pmt}

	case amortize.FieldPayment:
		pv, rate, n := *in.Principal, *in.AnnualRate, *in.NumPayments
		if pv <= 0 || rate <= 0 || n <= 0 {
			return nil, u.infeasible(field, fmt.Sprintf(msgPositiveFormat, "loan amount, interest rate and number of payments"))
		}
		res, ok = u.solver.SolveForPayment(pv, rate, n)
		filled = FilledInputs{Principal: pv, AnnualRate: rate, NumPayments: n, Payment: res.Value}
	}

	if !ok || !finite(res.Value, res.TotalPaid, res.TotalInterest) {
		return nil, u.infeasible(field, msgNotComputable)
	}

	u.log.WithFields(logrus.Fields{
		"solved_field": res.Solved,
		"value":        res.Value,
	}).Info("loan: solved")

	return &ResultDTO{
		SolvedField:   res.Solved,
		Value:         res.Value,
		TotalPaid:     res.TotalPaid,
		TotalInterest: res.TotalInterest,
		Inputs:        filled,
		Display: Display{
			Value:         u.format.Value(res.Solved, res.Value),
			TotalPaid:     u.format.Currency(res.TotalPaid),
			TotalInterest: u.format.Currency(res.TotalInterest),
		},
	}, nil
}

func (u *Usecase) infeasible(field amortize.Field, msg string) error {
	u.log.WithField("field", field).Warn("loan: " + msg)
	return fmt.Errorf("%w: %s", domain.ErrInfeasibleLoan, msg)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
