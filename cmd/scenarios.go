package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/scenario"
	"github.com/sells-group/valuation-cli/internal/valuation"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios <intake-file>",
	Short: "Compose sale scenarios for a company",
	Long:  "Values the company and composes the conservative, base and optimistic sale scenarios with their tax impact and ROI.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("profile")
		taxBase, _ := cmd.Flags().GetFloat64("tax-base")
		acquisition, _ := cmd.Flags().GetFloat64("acquisition")
		custom, _ := cmd.Flags().GetFloat64("custom")
		reinvestAmount, _ := cmd.Flags().GetFloat64("reinvest")
		reinvestQualifies, _ := cmd.Flags().GetBool("reinvest-qualifies")

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

		results, err := scenario.ComposeAll(cmd.Context(), scns, base, profile, acquisition,
			reinvestmentFromFlags(reinvestAmount, reinvestQualifies))
		if err != nil {
			return err
		}

		formatValuation(os.Stdout, intake, base)
		fmt.Fprintln(os.Stdout)
		formatScenarios(os.Stdout, results)
		return nil
	},
}

func init() {
	scenariosCmd.Flags().String("profile", "individual", "taxpayer profile (individual, company)")
	scenariosCmd.Flags().Float64("tax-base", 0, "current corporate tax base (company profile only)")
	scenariosCmd.Flags().Float64("acquisition", 0, "acquisition value of the stake")
	scenariosCmd.Flags().Float64("custom", 0, "add a custom scenario at this sale price")
	scenariosCmd.Flags().Float64("reinvest", 0, "planned reinvestment amount")
	scenariosCmd.Flags().Bool("reinvest-qualifies", false, "reinvestment plan meets the legal requirements")
	_ = scenariosCmd.MarkFlagRequired("acquisition")
	rootCmd.AddCommand(scenariosCmd)
}

// formatScenarios writes one row per scenario to w.
func formatScenarios(out io.Writer, results []model.ScenarioResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ESCENARIO\tPRECIO\tIMPUESTO\tNETO\tROI")
	for _, res := range results {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			res.Scenario.Name,
			money(res.Valuation),
			money(res.Tax.TotalTax),
			money(res.NetReturn),
			pct(res.ROI),
		)
	}
	_ = w.Flush()
}
