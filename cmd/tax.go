package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/tax"
)

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Compute the tax impact of a sale",
	Long:  "Computes Spanish capital-gain tax on a company sale for an individual or corporate seller, with the full bracket breakdown.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		kind, _ := cmd.Flags().GetString("profile")
		taxBase, _ := cmd.Flags().GetFloat64("tax-base")
		salePrice, _ := cmd.Flags().GetFloat64("sale-price")
		acquisition, _ := cmd.Flags().GetFloat64("acquisition")
		salePct, _ := cmd.Flags().GetFloat64("sale-pct")
		reinvestAmount, _ := cmd.Flags().GetFloat64("reinvest")
		reinvestQualifies, _ := cmd.Flags().GetBool("reinvest-qualifies")

		profile, err := profileFromFlags(kind, taxBase)
		if err != nil {
			return err
		}

		res := tax.CalculateImpact(profile, salePrice, acquisition, salePct,
			reinvestmentFromFlags(reinvestAmount, reinvestQualifies))

		formatTaxResult(os.Stdout, res)
		return nil
	},
}

func init() {
	taxCmd.Flags().String("profile", "individual", "taxpayer profile (individual, company)")
	taxCmd.Flags().Float64("tax-base", 0, "current corporate tax base (company profile only)")
	taxCmd.Flags().Float64("sale-price", 0, "sale price")
	taxCmd.Flags().Float64("acquisition", 0, "acquisition value of the stake")
	taxCmd.Flags().Float64("sale-pct", 100, "percentage of the company being sold")
	taxCmd.Flags().Float64("reinvest", 0, "planned reinvestment amount")
	taxCmd.Flags().Bool("reinvest-qualifies", false, "reinvestment plan meets the legal requirements")
	_ = taxCmd.MarkFlagRequired("sale-price")
	rootCmd.AddCommand(taxCmd)
}

// formatTaxResult writes the tax summary and bracket breakdown to w.
func formatTaxResult(out io.Writer, res *model.TaxCalculationResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Precio de venta:\t%s\n", money(res.SalePrice))
	_, _ = fmt.Fprintf(w, "Valor de adquisición:\t%s\n", money(res.AcquisitionValue))
	_, _ = fmt.Fprintf(w, "Gastos deducibles:\t%s\n", money(res.DeductibleExpenses))
	_, _ = fmt.Fprintf(w, "Plusvalía:\t%s\n", money(res.CapitalGain))
	_, _ = fmt.Fprintf(w, "Base imponible:\t%s\n", money(res.TaxableGain))
	_, _ = fmt.Fprintf(w, "Impuesto total:\t%s\n", money(res.TotalTax))
	if res.ReinvestmentBenefit > 0 {
		_, _ = fmt.Fprintf(w, "Exención por reinversión:\t%s\n", money(res.ReinvestmentBenefit))
	}
	_, _ = fmt.Fprintf(w, "Neto después de impuestos:\t%s\n", money(res.NetAfterTax))
	_, _ = fmt.Fprintf(w, "Tipo efectivo:\t%s\n", pct(res.EffectiveTaxRate*100))

	if len(res.Breakdown) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "TRAMO\tBASE\tTIPO")
		for _, line := range res.Breakdown {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", line.Description, money(line.Amount), pct(line.Rate*100))
		}
	}
	_ = w.Flush()
}
