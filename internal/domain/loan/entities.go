package loan

import (
	"errors"

	"loan-calculator/pkg/amortize"
)

var (
	// ErrInvalidInput: wrong number of filled fields or a field that is not a number.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInfeasibleLoan: well-formed values that no loan can satisfy.
	ErrInfeasibleLoan = errors.New("infeasible loan")
)

// Inputs holds the four loan variables; exactly one is expected to be nil.
type Inputs struct {
	Principal   *float64 `json:"principal,omitempty"`
	AnnualRate  *float64 `json:"annual_rate,omitempty"`
	NumPayments *float64 `json:"num_payments,omitempty"`
	Payment     *float64 `json:"payment,omitempty"`
}

// Missing returns the single unset field, or ErrInvalidInput when the number
// of set fields is not three.
func (in Inputs) Missing() (amortize.Field, error) {
	var missing []amortize.Field
	if in.Principal == nil {
		missing = append(missing, amortize.FieldPrincipal)
	}
	if in.AnnualRate == nil {
		missing = append(missing, amortize.FieldAnnualRate)
	}
	if in.NumPayments == nil {
		missing = append(missing, amortize.FieldNumPayments)
	}
	if in.Payment == nil {
		missing = append(missing, amortize.FieldPayment)
	}
	if len(missing) != 1 {
		return "", ErrInvalidInput
	}
	return missing[0], nil
}
