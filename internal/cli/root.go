// Package cli implements the invoicecheck command line tool.
package cli

import "github.com/spf13/cobra"

var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "invoicecheck",
		Short:         "Check payout invoices against the PayPal and bank transfer requirements",
		Long:          "invoicecheck normalizes validation reports, prints the requirement catalogue and mints API tokens.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newNormalizeCmd())
	cmd.AddCommand(newRequirementsCmd())
	cmd.AddCommand(newTokenCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
