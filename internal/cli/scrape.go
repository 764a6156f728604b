package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/golf-rounds/internal/logger"
	"github.com/pfrederiksen/golf-rounds/internal/round"
	"github.com/pfrederiksen/golf-rounds/internal/scraper"
	"github.com/pfrederiksen/golf-rounds/internal/storage"
)

func newScrapeCmd(opts *rootOptions) *cobra.Command {
	var (
		flagProfileURL string
		flagMaxPages   int
		flagFormat     string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Collect rounds from the Golfshot profile",
		Long: `Walks the profile's round list, fetches every round page and appends
rounds not stored yet to rounds-data.json. Exits with code 2 when new rounds
were added.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}

			profileURL := opts.cfg.ProfileURL
			if flagProfileURL != "" {
				profileURL = flagProfileURL
			}
			maxPages := opts.cfg.MaxPages
			if cmd.Flags().Changed("max-pages") {
				maxPages = flagMaxPages
			}

			logger.Info("Scraping rounds", logger.Fields{"profile": profileURL, "max_pages": maxPages})

			sc := scraper.New(profileURL,
				scraper.WithMaxPages(maxPages),
				scraper.WithLogger(logger.Default()),
			)
			rounds, err := sc.FetchAll()
			if err != nil {
				return fmt.Errorf("fetching rounds: %w", err)
			}

			result, err := importRounds(opts.store, rounds, profileURL)
			if err != nil {
				return err
			}

			if err := WriteOutput(cmd.OutOrStdout(), result, format); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			// Set exit code based on whether new rounds were found
			if result.Added > 0 {
				opts.exitCode = ExitNewRounds
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagProfileURL, "profile-url", "", "Golfshot profile rounds URL (overrides config)")
	cmd.Flags().IntVar(&flagMaxPages, "max-pages", scraper.DefaultMaxPages, "Maximum number of round list pages to visit")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}

func newMergeCmd(opts *rootOptions) *cobra.Command {
	var flagFormat string

	cmd := &cobra.Command{
		Use:   "merge <rounds.json>",
		Short: "Append rounds from a JSON file",
		Long: `Reads a JSON array of rounds, for example one saved from a browser
session, and appends rounds whose URL is not stored yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}

			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			rounds, err := storage.LoadRoundsFile(path)
			if err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}

			result, err := importRounds(opts.store, rounds, path)
			if err != nil {
				return err
			}

			if err := WriteOutput(cmd.OutOrStdout(), result, format); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}

// importRounds drops structurally invalid rounds and appends the rest
func importRounds(store *storage.Storage, rounds []*round.Round, source string) (*ImportResult, error) {
	valid := make([]*round.Round, 0, len(rounds))
	invalid := 0
	for _, r := range rounds {
		if err := r.Validate(); err != nil {
			invalid++
			logger.Warn("Rejecting invalid round", logger.Fields{"url": r.URL}, err)
			continue
		}
		valid = append(valid, r)
	}

	added, skipped, err := store.AppendRounds(valid)
	if err != nil {
		return nil, fmt.Errorf("saving rounds: %w", err)
	}

	logger.SetGauge("rounds.added", float64(added))
	logger.Info("Stored rounds", logger.Fields{"added": added, "skipped": skipped, "invalid": invalid})

	return &ImportResult{
		CheckedAt: time.Now().UTC(),
		Source:    source,
		Fetched:   len(rounds),
		Added:     added,
		Skipped:   skipped,
		Invalid:   invalid,
		File:      store.Path(storage.RoundsFile),
	}, nil
}
