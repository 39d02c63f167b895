package loan

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	domain "loan-calculator/internal/domain/loan"
	"loan-calculator/pkg/amortize"
)

// ----- test doubles -----

// refusingSolver rejects every request, standing in for a solver whose
// preconditions are stricter than the use case pre-checks.
type refusingSolver struct{ calls int }

func (s *refusingSolver) SolveForPrincipal(float64, float64, float64) (amortize.Result, bool) {
	s.calls++
	return amortize.Result{}, false
}
func (s *refusingSolver) SolveForRate(float64, float64, float64) (amortize.Result, bool) {
	s.calls++
	return amortize.Result{}, false
}
func (s *refusingSolver) SolveForNumPayments(float64, float64, float64) (amortize.Result, bool) {
	s.calls++
	return amortize.Result{}, false
}
func (s *refusingSolver) SolveForPayment(float64, float64, float64) (amortize.Result, bool) {
	s.calls++
	return amortize.Result{}, false
}

func newTestUsecase(t *testing.T) *Usecase {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	return NewUsecase(amortize.NewCalculator(), Formatter{PeriodPrecision: DefaultPeriodPrecision}, logger)
}

// ----- tests -----

func TestCalculate_Payment(t *testing.T) {
	uc := newTestUsecase(t)
	dto, err := uc.Calculate(context.Background(), CalculateInput{
		Principal: "10000", AnnualRate: "6", NumPayments: "36",
	})
	if err != nil {
		t.Fatalf("Calculate err: %v", err)
	}
	if dto.SolvedField != amortize.FieldPayment {
		t.Fatalf("solved = %s", dto.SolvedField)
	}
	if dto.Display.Value != "$304.22" {
		t.Fatalf("display value = %q, want $304.22", dto.Display.Value)
	}
	if dto.Inputs.Payment != dto.Value || dto.Inputs.Principal != 10000 {
		t.Fatalf("inputs not completed: %+v", dto.Inputs)
	}
	if dto.TotalInterest != dto.TotalPaid-10000 {
		t.Fatalf("interest %v != paid %v - principal", dto.TotalInterest, dto.TotalPaid)
	}
}

func TestCalculate_Rate(t *testing.T) {
	uc := newTestUsecase(t)
	dto, err := uc.Calculate(context.Background(), CalculateInput{
		Principal: "10000", NumPayments: "36", Payment: "304.22",
	})
	if err != nil {
		t.Fatalf("Calculate err: %v", err)
	}
	if math.Abs(dto.Value-6) > 0.1 {
		t.Fatalf("rate = %v, want ~6", dto.Value)
	}
	if dto.Display.Value != "6.00%" {
		t.Fatalf("display value = %q, want 6.00%%", dto.Display.Value)
	}
}

func TestCalculate_Principal(t *testing.T) {
	uc := newTestUsecase(t)
	dto, err := uc.Calculate(context.Background(), CalculateInput{
		AnnualRate: "6", NumPayments: "36", Payment: "304.22",
	})
	if err != nil {
		t.Fatalf("Calculate err: %v", err)
	}
	if !strings.HasPrefix(dto.Display.Value, "$") || math.Abs(dto.Value-10000) > 0.1 {
		t.Fatalf("unexpected principal %v (%s)", dto.Value, dto.Display.Value)
	}
}

func TestCalculate_NumPaymentsKeepsFraction(t *testing.T) {
	uc := newTestUsecase(t)
	dto, err := uc.Calculate(context.Background(), CalculateInput{
		Principal: "10000", AnnualRate: "6", Payment: "500",
	})
	if err != nil {
		t.Fatalf("Calculate err: %v", err)
	}
	if dto.Value == math.Round(dto.Value*100)/100 {
		t.Fatalf("numeric result should not be rounded: %v", dto.Value)
	}
	if strings.Count(dto.Display.Value, ".") != 1 || len(strings.Split(dto.Display.Value, ".")[1]) != 2 {
		t.Fatalf("display should use 2 decimals: %q", dto.Display.Value)
	}
}

func TestCalculate_TrimsWhitespace(t *testing.T) {
	uc := newTestUsecase(t)
	_, err := uc.Calculate(context.Background(), CalculateInput{
		Principal: " 10000 ", AnnualRate: "\t6", NumPayments: "36\n", Payment: "   ",
	})
	if err != nil {
		t.Fatalf("Calculate err: %v", err)
	}
}

func TestCalculate_RequiresExactlyThree(t *testing.T) {
	uc := newTestUsecase(t)
	for _, in := range []CalculateInput{
		{},
		{Principal: "1", AnnualRate: "2"},
		{Principal: "1", AnnualRate: "2", NumPayments: "3", Payment: "4"},
	} {
		_, err := uc.Calculate(context.Background(), in)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%+v: want ErrInvalidInput, got %v", in, err)
		}
		if !strings.Contains(err.Error(), "exactly 3 fields") {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
}

func TestCalculate_RejectsNonNumeric(t *testing.T) {
	uc := newTestUsecase(t)
	for _, bad := range []string{"abc", "12,5", "NaN", "Inf", "-inf"} {
		_, err := uc.Calculate(context.Background(), CalculateInput{
			Principal: bad, AnnualRate: "6", NumPayments: "36",
		})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%q: want ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestCalculate_Infeasible(t *testing.T) {
	uc := newTestUsecase(t)
	cases := []struct {
		name string
		in   CalculateInput
		msg  string
	}{
		{"zero rate", CalculateInput{AnnualRate: "0", NumPayments: "36", Payment: "300"}, "greater than zero"},
		{"negative principal", CalculateInput{Principal: "-1", AnnualRate: "6", NumPayments: "36"}, "greater than zero"},
		{"interest free boundary", CalculateInput{Principal: "10000", NumPayments: "40", Payment: "250"}, msgPaymentTooLow},
		{"below interest only", CalculateInput{Principal: "12000", AnnualRate: "6", Payment: "50"}, msgNeverPaidOff},
		{"zero payments", CalculateInput{Principal: "10000", NumPayments: "0", Payment: "300"}, "greater than zero"},
		{"zero payment", CalculateInput{Principal: "10000", AnnualRate: "6", Payment: "0"}, "greater than zero"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Calculate(context.Background(), tc.in)
			if !errors.Is(err, domain.ErrInfeasibleLoan) {
				t.Fatalf("want ErrInfeasibleLoan, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.msg)
			}
		})
	}
}

func TestSolve_SolverRefusalIsInfeasible(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	solver := &refusingSolver{}
	uc := NewUsecase(solver, Formatter{}, logger)

	_, err := uc.Calculate(context.Background(), CalculateInput{
		Principal: "10000", AnnualRate: "6", NumPayments: "36",
	})
	if !errors.Is(err, domain.ErrInfeasibleLoan) {
		t.Fatalf("want ErrInfeasibleLoan, got %v", err)
	}
	if !strings.Contains(err.Error(), msgNotComputable) {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if solver.calls != 1 {
		t.Fatalf("solver calls = %d, want 1", solver.calls)
	}
	if len(hook.Entries) == 0 {
		t.Fatal("expected a warning to be logged")
	}
}

func TestSolve_ParsedInputs(t *testing.T) {
	uc := newTestUsecase(t)
	pv, rate, n := 10000.0, 6.0, 36.0
	dto, err := uc.Solve(context.Background(), domain.Inputs{Principal: &pv, AnnualRate: &rate, NumPayments: &n})
	if err != nil {
		t.Fatalf("Solve err: %v", err)
	}
	if dto.SolvedField != amortize.FieldPayment {
		t.Fatalf("solved = %s", dto.SolvedField)
	}

	if _, err := uc.Solve(context.Background(), domain.Inputs{Principal: &pv}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestCalculate_LongTermPaymentStaysFinite(t *testing.T) {
	uc := newTestUsecase(t)
	dto, err := uc.Calculate(context.Background(), CalculateInput{
		Principal: "10000", AnnualRate: "6", NumPayments: "200000",
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// the payment converges to the interest-only amount
	if math.Abs(dto.Value-50) > 1e-9 {
		t.Fatalf("payment = %v, want 50", dto.Value)
	}
	if dto.Display.Value != "$50.00" {
		t.Fatalf("display = %q", dto.Display.Value)
	}
}

func TestCalculate_OverflowingTotalsAreInfeasible(t *testing.T) {
	uc := newTestUsecase(t)
	_, err := uc.Calculate(context.Background(), CalculateInput{
		Principal: "1e308", AnnualRate: "6", NumPayments: "1000",
	})
	if !errors.Is(err, domain.ErrInfeasibleLoan) {
		t.Fatalf("err = %v, want ErrInfeasibleLoan", err)
	}
}
