package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/golf-rounds/internal/config"
	"github.com/pfrederiksen/golf-rounds/internal/logger"
	"github.com/pfrederiksen/golf-rounds/internal/storage"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNewRounds = 2
)

// rootOptions carries persistent flags and the state shared by subcommands
type rootOptions struct {
	configFile string
	dataDir    string
	verbose    bool

	cfg      *config.Config
	store    *storage.Storage
	exitCode int
}

// newRootCmd creates the root command and the options its subcommands share
func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "golf-rounds",
		Short: "Collect and compare golf rounds from a Golfshot profile",
		Long: `A CLI tool to collect golf rounds from a Golfshot profile and compare
two players. Scores are normalized to 18 holes so partial rounds can be
compared with full ones.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logger.Debug("Run metrics", logger.GetMetricsSnapshot())
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", config.DefaultFile, "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Data directory for rounds and exports (overrides config)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newScrapeCmd(opts),
		newMergeCmd(opts),
		newAnalyzeCmd(opts),
		newExportCmd(opts),
		newChartCmd(opts),
	)

	return cmd, opts
}

// setup loads configuration, installs the logger and opens storage
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	o.cfg = cfg

	level := logger.ParseLevel(cfg.LogLevel)
	if o.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	o.store = store

	logger.Debug("Configuration loaded", logger.Fields{
		"config":   o.configFile,
		"data_dir": store.Dir(),
		"player_a": cfg.Players.A.Name,
		"player_b": cfg.Players.B.Name,
	})

	return nil
}

// Run executes the CLI with args and returns the process exit code
func Run(args []string, stdout, stderr io.Writer) int {
	cmd, opts := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return opts.exitCode
}

// Execute runs the CLI
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
