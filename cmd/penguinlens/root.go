package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/penguinlens/config"
	"github.com/spektr-org/penguinlens/dataset"
	plog "github.com/spektr-org/penguinlens/internal/log"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	verbose    bool
	quiet      bool
	noColor    bool
	logJSON    bool
	configPath string
	dataPath   string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	root := &cobra.Command{
		Use:   "penguinlens",
		Short: "Interactive dashboard for the Palmer penguins dataset",
		Long: `penguinlens serves an interactive dashboard over the Palmer penguins
measurements: a species filter, two tables and four charts that redraw
when the inputs they read change. It can also render any single view to
JSON, CSV or PNG from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			plog.Setup(g.verbose, g.quiet, g.logJSON)
			if g.noColor {
				color.NoColor = true
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&g.noColor, "no-color", false, "disable colored output")
	pf.BoolVar(&g.logJSON, "log-json", false, "write logs as JSON")
	pf.StringVar(&g.configPath, "config", "", "config file (default "+config.FileName+")")
	pf.StringVar(&g.dataPath, "data", "", "penguins CSV file (default: embedded dataset)")

	root.AddCommand(
		newServeCmd(g),
		newRenderCmd(g),
		newDescribeCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads and validates the config file, then applies --data.
func (g *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, exitError(ExitStartupFailure, "load config: %v", err)
	}
	if g.dataPath != "" {
		cfg.DataPath = g.dataPath
	}
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "%v", err)
	}
	return cfg, nil
}

// loadDataset opens the configured CSV, or the embedded copy.
func loadDataset(cfg *config.Config) (*dataset.Dataset, error) {
	src := dataset.Embedded()
	if cfg.DataPath != "" {
		src = dataset.File(cfg.DataPath)
	}
	ds, err := dataset.Load(src)
	if err != nil {
		return nil, exitError(ExitStartupFailure, "%v", err)
	}
	return ds, nil
}
