package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/golf-rounds/internal/analysis"
	"github.com/pfrederiksen/golf-rounds/internal/chart"
	"github.com/pfrederiksen/golf-rounds/internal/logger"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var (
		filters    filterFlags
		flagFormat string
		flagSort   string
		flagChart  string
		flagNoSave bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compare the two tracked players",
		Long: `Compares the two tracked players on every stored round they both played,
with scores normalized to 18 holes, and prints each round's winner and the
win/tie totals. The chart series is saved to score-graph-data.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}
			order, err := parseSortOrder(flagSort)
			if err != nil {
				return err
			}
			flt, err := filters.build(time.Now())
			if err != nil {
				return err
			}

			rounds, err := opts.store.LoadRounds()
			if err != nil {
				return fmt.Errorf("loading rounds: %w", err)
			}

			selected := sortRounds(flt.Apply(rounds), order)
			logger.Debug("Selected rounds", logger.Fields{
				"stored":   len(rounds),
				"selected": len(selected),
				"filter":   flt.String(),
			})

			report := analysis.Analyze(selected, opts.cfg.Players)
			logger.SetGauge("analysis.compared", float64(report.Summary.Total))
			logger.Info("Analyzed rounds", logger.Fields{
				"rounds":   len(selected),
				"compared": report.Summary.Total,
			})

			out := cmd.OutOrStdout()
			switch format {
			case FormatJSON:
				err = analysis.WriteJSON(out, report)
			default:
				err = analysis.WriteText(out, report)
			}
			if err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			if !flagNoSave {
				if err := opts.store.SaveGraphData(report.Graph); err != nil {
					return fmt.Errorf("saving graph data: %w", err)
				}
			}

			if flagChart != "" {
				if err := writeChart(flagChart, report.Graph); err != nil {
					return err
				}
				logger.Info("Wrote chart", logger.Fields{"path": flagChart})
			}

			return nil
		},
	}

	filters.register(cmd, false)
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByInput), "Round order: input, date or course")
	cmd.Flags().StringVar(&flagChart, "chart", "", "Also render the score chart as PNG to this path")
	cmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not write score-graph-data.json")

	return cmd
}

func writeChart(path string, graph *analysis.GraphData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if err := chart.Render(f, graph); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing chart file: %w", err)
	}
	return nil
}
