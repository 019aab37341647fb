package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadfill-cli/internal/zipcode"
)

var zipCmd = &cobra.Command{
	Use:   "zip <value>...",
	Short: "Print the 5-digit form of raw zip values",
	Long: `Shows how raw zip values normalize for dealer matching. A value that does not
start with five digits normalizes to an empty string and never matches a dealer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "RAW\tNORMALIZED")
		for _, raw := range args {
			norm := zipcode.Normalize(raw)
			if norm == "" {
				norm = "(none)"
			}
			_, _ = fmt.Fprintf(w, "%q\t%s\n", raw, norm)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(zipCmd)
}
