package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadfill-cli/internal/config"
	"github.com/sells-group/leadfill-cli/internal/pipeline"
	"github.com/sells-group/leadfill-cli/internal/report"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leadfill",
	Short: "Clean website leads and fill missing dealer assignments",
	Long: `Reads the website lead export and the dealer zip territory table from the
working directory, drops same-day duplicate submissions, fills blank dealer
fields for partner-routed leads by 5-digit zip lookup, and writes the cleaned
export with a console summary.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		out, err := report.NewPrinter(cmd.OutOrStdout(), cfg.Report.Charset)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
		}

		_, err = pipeline.New(cfg, st, out).Run(ctx)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
