package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/notify"
	"invoicecheck/internal/render"
	"invoicecheck/internal/report"
)

// ErrNotApproved is returned in strict mode when the result is not approved.
var ErrNotApproved = errors.New("invoice not approved")

func newNormalizeCmd() *cobra.Command {
	var (
		invoiceType      string
		language         string
		format           string
		warnUnrecognized bool
		strict           bool
	)

	cmd := &cobra.Command{
		Use:   "normalize [file|-]",
		Short: "Normalize a validation report into the canonical result",
		Long: "Read a structured or log-style validation report (JSON) from a file or stdin " +
			"and print the canonical validation result.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseInvoiceType(invoiceType)
			if err != nil {
				return fmt.Errorf("--invoice-type: %w", err)
			}
			lang, err := domain.ParseLanguage(language)
			if err != nil {
				return fmt.Errorf("--language: %w", err)
			}
			if format != "json" && format != "text" {
				return fmt.Errorf("--format must be json or text, got %q", format)
			}

			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			data, err := readInput(cmd, src)
			if err != nil {
				return err
			}

			r, err := report.Decode(data)
			if err != nil {
				return fmt.Errorf("decoding report: %w", err)
			}

			opts := report.Options{OnUnrecognizedLine: report.SkipUnrecognized}
			if warnUnrecognized {
				opts.OnUnrecognizedLine = report.WarnUnrecognized
			}
			result := report.NewNormalizer(opts).Normalize(r, t)

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("encoding result: %w", err)
				}
			} else {
				renderText(cmd.OutOrStdout(), &result, t, lang)
			}

			if strict && result.OverallStatus != domain.OverallStatusApproved {
				return ErrNotApproved
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&invoiceType, "invoice-type", string(domain.InvoiceTypePayPal), "Invoice type (paypal, bank_transfer)")
	cmd.Flags().StringVar(&language, "language", string(domain.LanguageEnglish), "Text output language (da, en)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, text)")
	cmd.Flags().BoolVar(&warnUnrecognized, "warn-unrecognized", false, "Report unrecognized log lines as warnings")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero unless the invoice is approved")

	return cmd
}

func readInput(cmd *cobra.Command, src string) ([]byte, error) {
	if src == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	return data, nil
}

func renderText(w io.Writer, result *domain.ValidationResult, t domain.InvoiceType, lang domain.Language) {
	fmt.Fprintf(w, "%s\n\n", statusBadge(result.OverallStatus))
	fmt.Fprint(w, render.Localized(result, notify.Label(t, lang), lang))
	for _, warn := range result.Warnings {
		fmt.Fprintln(w, warnStyle.Render("! "+warn))
	}
}
