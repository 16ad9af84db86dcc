package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/valuation"
)

var valueCmd = &cobra.Command{
	Use:   "value <intake-file>",
	Short: "Value a company from an intake file",
	Long:  "Computes the EBITDA-multiple valuation for the company described in a YAML or JSON intake file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		intake, err := loadIntake(args[0])
		if err != nil {
			return err
		}

		table, err := loadSectors()
		if err != nil {
			return err
		}

		res, err := valuation.Compute(intake, table)
		if err != nil {
			return err
		}

		formatValuation(os.Stdout, intake, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(valueCmd)
}

// formatValuation writes the valuation summary to w.
func formatValuation(out io.Writer, intake model.CompanyIntake, res *model.ValuationResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Empresa:\t%s\n", intake.CompanyName)
	_, _ = fmt.Fprintf(w, "Sector:\t%s\n", res.Sector)
	_, _ = fmt.Fprintf(w, "EBITDA utilizado:\t%s\n", money(res.EBITDAUsed))
	_, _ = fmt.Fprintf(w, "Múltiplo:\t%.1fx – %.1fx\n", res.MultipleLow, res.MultipleHigh)
	_, _ = fmt.Fprintf(w, "Rango bajo:\t%s\n", money(res.RangeLow))
	_, _ = fmt.Fprintf(w, "Estimación central:\t%s\n", money(res.PointEstimate))
	_, _ = fmt.Fprintf(w, "Rango alto:\t%s\n", money(res.RangeHigh))
	if res.UsedFallback {
		_, _ = fmt.Fprintf(w, "Aviso:\tsector sin múltiplo propio, banda por defecto aplicada\n")
	}
	_ = w.Flush()
}
