package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "List the sector multiple table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := loadSectors()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "SECTOR\tMÚLTIPLO")
		for _, m := range table.All() {
			_, _ = fmt.Fprintf(w, "%s\t%.1fx – %.1fx\n", m.Sector, m.Low, m.High)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sectorsCmd)
}
