package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pinDomain "loan-calculator/internal/domain/pin"
	"loan-calculator/internal/usecase/pin"
)

func newPinCmd(open Opener) *cobra.Command {
	c := &cobra.Command{
		Use:   "pin",
		Short: "Manage the access PIN",
	}
	c.AddCommand(
		newPinStatusCmd(open),
		newPinSetupCmd(open),
		newPinVerifyCmd(open),
		newPinResetCmd(open),
	)
	return c
}

func newPinStatusCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a PIN is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()
			configured, err := a.Gate.IsConfigured(cmd.Context())
			if err != nil {
				return err
			}
			if configured {
				fmt.Fprintln(cmd.OutOrStdout(), "PIN: configured")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "PIN: not configured")
			}
			return nil
		},
	}
}

func newPinSetupCmd(open Opener) *cobra.Command {
	var value, confirm string
	c := &cobra.Command{
		Use:   "setup",
		Short: "Create the PIN (first run only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.Gate.Enroll(cmd.Context(), value, confirm); err != nil {
				if errors.Is(err, pinDomain.ErrStoreUnavailable) {
					printError(cmd.ErrOrStderr(), "failed to save PIN", err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "PIN saved")
			return nil
		},
	}
	c.Flags().StringVar(&value, "pin", "", "new 4-digit PIN")
	c.Flags().StringVar(&confirm, "confirm", "", "the same PIN again")
	_ = c.MarkFlagRequired("pin")
	_ = c.MarkFlagRequired("confirm")
	return c
}

func newPinVerifyCmd(open Opener) *cobra.Command {
	var value string
	c := &cobra.Command{
		Use:   "verify",
		Short: "Check a PIN against the stored one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()
			ok, err := a.Gate.Verify(cmd.Context(), value)
			if err != nil {
				return err
			}
			if !ok {
				return pinDomain.ErrIncorrectPIN
			}
			fmt.Fprintln(cmd.OutOrStdout(), "PIN ok")
			return nil
		},
	}
	c.Flags().StringVar(&value, "pin", "", "PIN to check")
	_ = c.MarkFlagRequired("pin")
	return c
}

func newPinResetCmd(open Opener) *cobra.Command {
	var current, next, confirm string
	c := &cobra.Command{
		Use:   "reset",
		Short: "Replace the PIN after checking the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := pin.Confirm(next, confirm); err != nil {
				return err
			}
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.Gate.Reset(cmd.Context(), current, next); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "PIN changed")
			return nil
		},
	}
	c.Flags().StringVar(&current, "current", "", "current PIN")
	c.Flags().StringVar(&next, "new", "", "new 4-digit PIN")
	c.Flags().StringVar(&confirm, "confirm", "", "the new PIN again")
	for _, f := range []string{"current", "new", "confirm"} {
		_ = c.MarkFlagRequired(f)
	}
	return c
}
