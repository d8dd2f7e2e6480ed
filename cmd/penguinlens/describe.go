package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/penguinlens/dataset"
	"github.com/spektr-org/penguinlens/engine"
	"github.com/spektr-org/penguinlens/schema"
)

func newDescribeCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Summarise the dataset per species",
		Long:  "Print row counts, the mean of each measurement and missing values per species.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			ds, err := loadDataset(cfg)
			if err != nil {
				return err
			}
			describe(cmd.OutOrStdout(), ds)
			return nil
		},
	}
}

func describe(w io.Writer, ds *dataset.Dataset) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	view := ds.View()
	cfg := schema.Penguins()

	bold.Fprintf(w, "%s", ds.Name())
	dim.Fprintf(w, "  %d rows\n\n", ds.Len())

	for _, gp := range engine.BuildProfiles(view) {
		cyan.Fprintf(w, "%-10s", gp.Key)
		fmt.Fprintf(w, " %d rows\n", gp.Rows)
		for _, m := range gp.Measures {
			fmt.Fprintf(w, "  %-22s", cfg.Label(m.Measure))
			if m.Count == 0 {
				dim.Fprintf(w, "%10s", "n/a")
			} else {
				fmt.Fprintf(w, "%10s  [%s, %s]",
					engine.FormatNumber(m.Mean), engine.FormatNumber(m.Min), engine.FormatNumber(m.Max))
			}
			if m.Missing > 0 {
				yellow.Fprintf(w, "  %d missing", m.Missing)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}
}
