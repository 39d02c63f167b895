package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"loan-calculator/internal/app"
	"loan-calculator/internal/config"
)

// Opener builds the application from the environment. Tests swap it out.
type Opener func() (*app.App, error)

func openFromEnv() (*app.App, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := app.NewLogger(cfg.LogLevel)
	// keep stdout for results
	logger.SetOutput(io.Discard)
	if cfg.LogLevel == "debug" {
		logger.SetOutput(os.Stderr)
	}
	return app.Build(cfg, logger)
}

func NewRootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "loancalc",
		Short: "Loan calculator behind a 4-digit PIN",
		Long: `loancalc solves a fixed-payment loan for whichever of principal,
annual rate, number of payments or payment amount is left blank.

The secret store, hash scheme and display precision come from the same
environment variables as the HTTP server (STORE_DRIVER, SQLITE_PATH, ...).`,
		SilenceUsage: true,
	}
	root.AddCommand(newCalcCmd(open), newPinCmd(open))
	return root
}

func Execute() error {
	return NewRootCmd(openFromEnv).Execute()
}

func printError(w io.Writer, msg string, err error) {
	fmt.Fprintf(w, "error: %s: %v\n", msg, err)
}
