package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/golf-rounds/internal/export"
	"github.com/pfrederiksen/golf-rounds/internal/logger"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		filters  filterFlags
		flagOut  string
		flagXLSX string
		flagSort string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write per-player, per-course CSV files",
		Long: `Flattens the stored rounds into one CSV file per player and course,
named <player>-<course>.csv, with par, distance, handicap and score columns
for every hole. --xlsx additionally writes all tables into one workbook.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d rounds match (out of %d total)\n", len(selected), len(rounds))
			if len(selected) == 0 {
				fmt.Fprintln(out, "No rounds to export.")
				return nil
			}

			groups := export.GroupByPlayerCourse(selected)

			dir := flagOut
			if dir == "" {
				dir = opts.store.Dir()
			}
			written, err := export.WriteCSVFiles(dir, groups)
			if err != nil {
				return fmt.Errorf("exporting CSV: %w", err)
			}
			for i, path := range written {
				fmt.Fprintf(out, "Created %s with %d rounds\n", path, len(groups[i].Records))
			}
			logger.Info("Exported CSV files", logger.Fields{"dir": dir, "files": len(written)})

			if flagXLSX != "" {
				if err := writeWorkbook(flagXLSX, groups); err != nil {
					return err
				}
				fmt.Fprintf(out, "Created %s with %d sheets\n", flagXLSX, len(groups))
			}

			return nil
		},
	}

	filters.register(cmd, true)
	cmd.Flags().StringVar(&flagOut, "out", "", "Output directory for CSV files (default: data directory)")
	cmd.Flags().StringVar(&flagXLSX, "xlsx", "", "Also write an XLSX workbook to this path")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByInput), "Round order: input, date or course")

	return cmd
}

func writeWorkbook(path string, groups []*export.PlayerCourse) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating workbook: %w", err)
	}
	if err := export.WriteWorkbook(f, groups); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing workbook: %w", err)
	}
	return nil
}
