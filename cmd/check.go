package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check <intake-file>",
	Short: "Validate an intake file step by step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		intake, err := loadIntake(args[0])
		if err != nil {
			return err
		}

		ok := formatStepValidation(os.Stdout, intake)
		if !ok {
			return eris.New("la validación ha fallado")
		}
		return nil
	},
}

var checkTaxIDCmd = &cobra.Command{
	Use:   "taxid <cif>",
	Short: "Validate a Spanish CIF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validate.ValidateTaxID(args[0]) {
			return eris.Errorf("%s no es un CIF válido", args[0])
		}
		fmt.Fprintf(os.Stdout, "%s es un CIF válido\n", args[0])
		return nil
	},
}

func init() {
	checkCmd.AddCommand(checkTaxIDCmd)
	rootCmd.AddCommand(checkCmd)
}

// formatStepValidation runs every step against the intake, writes a
// per-field report and reports whether all steps passed.
func formatStepValidation(out io.Writer, intake model.CompanyIntake) bool {
	v := validate.NewStepValidator()
	allOK := true

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for step := 1; step <= validate.StepCount; step++ {
		_, _ = fmt.Fprintf(w, "Paso %d\n", step)
		for _, field := range validate.StepFields(step) {
			v.Touch(field)
			res := v.ValidateField(field, intake)
			if res.Valid {
				_, _ = fmt.Fprintf(w, "  %s\tok\n", field)
				continue
			}
			allOK = false
			_, _ = fmt.Fprintf(w, "  %s\t%s\n", field, res.Message)
		}
	}
	_ = w.Flush()

	return allOK
}
