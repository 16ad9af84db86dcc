package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/store"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Inspect stored leads",
	Long:  "Commands for listing, viewing and qualifying the leads captured by the funnel.",
}

// -- leads list --

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored leads",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		sectorName, _ := cmd.Flags().GetString("sector")
		limit, _ := cmd.Flags().GetInt("limit")

		leads, err := st.ListLeads(ctx, store.LeadFilter{
			Status: model.LeadStatus(status),
			Sector: sectorName,
			Limit:  limit,
		})
		if err != nil {
			return eris.Wrap(err, "leads list")
		}

		if len(leads) == 0 {
			fmt.Fprintln(os.Stderr, "No hay leads.")
			return nil
		}

		formatLeadsList(os.Stdout, leads)
		return nil
	},
}

// -- leads show --

var leadsShowCmd = &cobra.Command{
	Use:   "show <lead-id>",
	Short: "Show full details of a lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		lead, err := st.GetLead(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "leads show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(lead)
	},
}

// -- leads status --

var leadsStatusCmd = &cobra.Command{
	Use:   "status <lead-id> <status>",
	Short: "Move a lead through the funnel",
	Long:  "Sets the lead status to new, qualified, contacted or archived.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		if err := st.UpdateLeadStatus(ctx, args[0], model.LeadStatus(args[1])); err != nil {
			return eris.Wrap(err, "leads status")
		}

		fmt.Fprintf(os.Stdout, "%s -> %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	leadsListCmd.Flags().String("status", "", "filter by status (new, qualified, contacted, archived)")
	leadsListCmd.Flags().String("sector", "", "filter by sector")
	leadsListCmd.Flags().Int("limit", 50, "max number of leads to display")

	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsShowCmd)
	leadsCmd.AddCommand(leadsStatusCmd)
	rootCmd.AddCommand(leadsCmd)
}

// formatLeadsList writes a tabular list of leads to w.
func formatLeadsList(out io.Writer, leads []model.Lead) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tEMPRESA\tSECTOR\tVALORACIÓN\tESTADO\tCREADO")
	for _, l := range leads {
		estimate := ""
		if l.Valuation != nil {
			estimate = money(l.Valuation.PointEstimate)
		}

		company := l.Intake.CompanyName
		if len(company) > 30 {
			company = company[:27] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncateID(l.ID),
			company,
			l.Intake.Sector,
			estimate,
			l.Status,
			l.CreatedAt.Format(time.DateOnly),
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
