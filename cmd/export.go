package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/valuation-cli/internal/report"
	"github.com/sells-group/valuation-cli/internal/scenario"
	"github.com/sells-group/valuation-cli/internal/valuation"
)

var exportCmd = &cobra.Command{
	Use:   "export <intake-file>",
	Short: "Export a valuation workbook",
	Long:  "Values the company, composes the sale scenarios and writes the advisory XLSX workbook.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("profile")
		taxBase, _ := cmd.Flags().GetFloat64("tax-base")
		acquisition, _ := cmd.Flags().GetFloat64("acquisition")
		custom, _ := cmd.Flags().GetFloat64("custom")
		out, _ := cmd.Flags().GetString("out")

		intake, err := loadIntake(args[0])
		if err != nil {
			return err
		}
		profile, err := profileFromFlags(kind, taxBase)
		if err != nil {
			return err
		}
		table, err := loadSectors()
		if err != nil {
			return err
		}

		base, err := valuation.Compute(intake, table)
		if err != nil {
			return err
		}

		scns := configuredScenarios()
		if custom > 0 {
			scns = append(scns, scenario.Custom(custom))
		}
		results, err := scenario.ComposeAll(cmd.Context(), scns, base, profile, acquisition, nil)
		if err != nil {
			return err
		}

		if err := report.WriteWorkbook(out, intake, base, results); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Informe escrito en %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("profile", "individual", "taxpayer profile (individual, company)")
	exportCmd.Flags().Float64("tax-base", 0, "current corporate tax base (company profile only)")
	exportCmd.Flags().Float64("acquisition", 0, "acquisition value of the stake")
	exportCmd.Flags().Float64("custom", 0, "add a custom scenario at this sale price")
	exportCmd.Flags().StringP("out", "o", "informe.xlsx", "output workbook path")
	_ = exportCmd.MarkFlagRequired("acquisition")
	rootCmd.AddCommand(exportCmd)
}
