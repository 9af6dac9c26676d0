package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/pipeline"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <year>...",
	Short: "Count accidents per month across census years",
	Long: "summarize reads each requested year's census file, counts accidents " +
		"per (year, month), and prints the month-by-year pivot table. Years " +
		"whose file is missing are skipped with a warning.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		years := make([]int, 0, len(args))
		for _, arg := range args {
			year, err := domain.CoerceYear(arg)
			if err != nil {
				return err
			}
			years = append(years, year)
		}

		_, logger, metrics, source, err := newEnv(cmd)
		if err != nil {
			return err
		}

		loader := pipeline.New(source, logger, metrics)
		matrix, err := loader.Summarize(cmd.Context(), years)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), matrix.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}
