package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/requirements"
)

func newRequirementsCmd() *cobra.Command {
	var (
		invoiceType string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "requirements",
		Short: "Print the requirements an invoice must satisfy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseInvoiceType(invoiceType)
			if err != nil {
				return fmt.Errorf("--invoice-type: %w", err)
			}
			set, err := requirements.ForType(t)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(set)
			}
			fmt.Fprint(cmd.OutOrStdout(), set.Text())
			return nil
		},
	}

	cmd.Flags().StringVar(&invoiceType, "invoice-type", string(domain.InvoiceTypePayPal), "Invoice type (paypal, bank_transfer)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
