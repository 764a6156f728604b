package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/golf-rounds/internal/logger"
	"github.com/pfrederiksen/golf-rounds/internal/storage"
)

func newChartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chart <output.png>",
		Short: "Render the last analysis as a PNG chart",
		Long: `Renders the series saved by the last analyze run (score-graph-data.json)
as a PNG line chart, without re-reading the rounds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := opts.store.LoadGraphData()
			if err != nil {
				return fmt.Errorf("loading graph data: %w", err)
			}
			if graph == nil {
				return fmt.Errorf("no saved graph data in %s, run analyze first", opts.store.Path(storage.GraphFile))
			}

			if err := writeChart(args[0], graph); err != nil {
				return err
			}
			logger.Info("Wrote chart", logger.Fields{"path": args[0], "rounds": graph.Len()})
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d rounds\n", args[0], graph.Len())
			return nil
		},
	}
}
