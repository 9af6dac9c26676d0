package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fars-report/internal/config"
	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/observability"
	"github.com/couchcryptid/fars-report/internal/reader"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "farsreport",
	Short: "Summarize and map FARS traffic-fatality census files.",
	Long: "farsreport reads yearly FARS accident census files " +
		"(accident_<year>.csv.bz2), aggregates per-month accident counts " +
		"across years, and renders accident locations for one state as a map.",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it. This
// is called by main.main() and only needs to happen once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "directory containing accident_<year>.csv.bz2 files (overrides FARS_DATA_DIR)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress per-file progress output")
}

// newEnv builds the config, logger, metrics, and (possibly cached)
// record source shared by the subcommands.
func newEnv(cmd *cobra.Command) (*config.Config, *slog.Logger, *observability.Metrics, domain.RecordSource, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		cfg.SuppressProgress = true
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var source domain.RecordSource = reader.New(cfg.DataDir, cfg.SuppressProgress, logger, metrics)
	if cfg.ReaderCacheSize > 0 {
		source = reader.NewCachedReader(source, cfg.ReaderCacheSize, metrics)
	}
	return cfg, logger, metrics, source, nil
}
