package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pinDomain "loan-calculator/internal/domain/pin"
	"loan-calculator/internal/usecase/loan"
	"loan-calculator/pkg/amortize"
)

var fieldLabels = map[amortize.Field]string{
	amortize.FieldPrincipal:   "Loan amount",
	amortize.FieldAnnualRate:  "Annual rate",
	amortize.FieldNumPayments: "Number of payments",
	amortize.FieldPayment:     "Monthly payment",
}

func newCalcCmd(open Opener) *cobra.Command {
	var (
		in     loan.CalculateInput
		pin    string
		asJSON bool
	)
	c := &cobra.Command{
		Use:   "calc",
		Short: "Solve the loan for the one value left out",
		Example: `  loancalc calc --principal 10000 --rate 6 --payments 36
  loancalc calc --principal 10000 --payments 36 --payment 304.22 --pin 1234`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			configured, err := a.Gate.IsConfigured(ctx)
			if err != nil {
				return err
			}
			if configured {
				if pin == "" {
					return errors.New("a PIN is configured: pass --pin")
				}
				ok, err := a.Gate.Verify(ctx, pin)
				if err != nil {
					return err
				}
				if !ok {
					return pinDomain.ErrIncorrectPIN
				}
			}

			res, err := a.Loans.Calculate(ctx, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(out, "%-20s %s\n", fieldLabels[res.SolvedField]+":", res.Display.Value)
			fmt.Fprintf(out, "%-20s %s\n", "Total paid:", res.Display.TotalPaid)
			fmt.Fprintf(out, "%-20s %s\n", "Total interest:", res.Display.TotalInterest)
			return nil
		},
	}
	f := c.Flags()
	f.StringVar(&in.Principal, "principal", "", "loan amount")
	f.StringVar(&in.AnnualRate, "rate", "", "annual interest rate in percent")
	f.StringVar(&in.NumPayments, "payments", "", "number of monthly payments")
	f.StringVar(&in.Payment, "payment", "", "monthly payment amount")
	f.StringVar(&pin, "pin", "", "PIN, required once one is configured")
	f.BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return c
}
