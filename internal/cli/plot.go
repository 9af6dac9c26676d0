package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/render"
)

var plotCmd = &cobra.Command{
	Use:   "plot --state <code> --year <year>",
	Short: "Map one state's accident locations for a census year",
	RunE: func(cmd *cobra.Command, args []string) error {
		stateNum, _ := cmd.Flags().GetInt("state")
		yearArg, _ := cmd.Flags().GetString("year")
		outPath, _ := cmd.Flags().GetString("out")

		year, err := domain.CoerceYear(yearArg)
		if err != nil {
			return err
		}

		cfg, logger, metrics, source, err := newEnv(cmd)
		if err != nil {
			return err
		}

		plotter := render.New(source, cfg.PlotOutputDir, logger, metrics)

		var written string
		if outPath != "" {
			written, err = plotter.PlotStateFile(cmd.Context(), stateNum, year, outPath)
		} else {
			written, err = plotter.PlotState(cmd.Context(), stateNum, year)
		}
		if err != nil {
			return err
		}
		if written == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "no accidents to plot for state %d in %d\n", stateNum, year)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), written)
		return nil
	},
}

func init() {
	plotCmd.Flags().Int("state", 0, "FARS state code, e.g. 1 for Alabama")
	plotCmd.Flags().String("year", "", "census year")
	plotCmd.Flags().StringP("out", "o", "", "output PNG path (default <plot-dir>/accidents_state<NN>_<year>.png)")
	_ = plotCmd.MarkFlagRequired("state")
	_ = plotCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(plotCmd)
}
