package loan

import "loan-calculator/pkg/amortize"

// CalculateInput carries the four entry fields as typed by the user.
// Exactly one must be left blank.
type CalculateInput struct {
	Principal   string `json:"principal"`
	AnnualRate  string `json:"annual_rate"`
	NumPayments string `json:"num_payments"`
	Payment     string `json:"payment"`
}

type FilledInputs struct {
	Principal   float64 `json:"principal"`
	AnnualRate  float64 `json:"annual_rate"`
	NumPayments float64 `json:"num_payments"`
	Payment     float64 `json:"payment"`
}

type Display struct {
	Value         string `json:"value"`
	TotalPaid     string `json:"total_paid"`
	TotalInterest string `json:"total_interest"`
}

type ResultDTO struct {
	SolvedField   amortize.Field `json:"solved_field"`
	Value         float64        `json:"value"`
	TotalPaid     float64        `json:"total_paid"`
	TotalInterest float64        `json:"total_interest"`
	Inputs        FilledInputs   `json:"inputs"`
	Display       Display        `json:"display"`
}
