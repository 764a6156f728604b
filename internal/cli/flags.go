package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/golf-rounds/internal/filter"
)

// filterFlags are the round selection flags shared by analyze and export
type filterFlags struct {
	from    string
	to      string
	dates   string
	courses []string
	players []string
}

func (f *filterFlags) register(cmd *cobra.Command, withPlayers bool) {
	cmd.Flags().StringVar(&f.from, "from", "", `Earliest round date, e.g. "Oct 1, 2025", "2025-10-01" or "3 days ago"`)
	cmd.Flags().StringVar(&f.to, "to", "", "Latest round date (inclusive)")
	cmd.Flags().StringVar(&f.dates, "range", "", `Date range, e.g. "Oct 1-15", "Sep 20 - Oct 5" or "October"`)
	cmd.Flags().StringSliceVar(&f.courses, "course", nil, "Only rounds at courses containing this text (repeatable)")
	if withPlayers {
		cmd.Flags().StringSliceVar(&f.players, "player", nil, "Only rounds that include this player (repeatable)")
	}
}

// build turns the flags into a filter, resolving relative dates against now
func (f *filterFlags) build(now time.Time) (*filter.Filter, error) {
	flt := filter.NewFilter()

	if f.dates != "" {
		if f.from != "" || f.to != "" {
			return nil, fmt.Errorf("--range cannot be combined with --from or --to")
		}
		from, to, err := filter.ParseDateRange(f.dates, now)
		if err != nil {
			return nil, fmt.Errorf("parsing --range: %w", err)
		}
		flt.DateFrom, flt.DateTo = from, to
	}

	if f.from != "" {
		from, err := filter.ParseDateBound(f.from, now)
		if err != nil {
			return nil, fmt.Errorf("parsing --from: %w", err)
		}
		flt.DateFrom = from
	}

	if f.to != "" {
		to, err := filter.ParseDateBound(f.to, now)
		if err != nil {
			return nil, fmt.Errorf("parsing --to: %w", err)
		}
		flt.DateTo = to
	}

	if flt.DateFrom != nil && flt.DateTo != nil && flt.DateFrom.After(*flt.DateTo) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	flt.Courses = append(flt.Courses, f.courses...)
	flt.Players = append(flt.Players, f.players...)

	return flt, nil
}
