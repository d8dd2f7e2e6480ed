package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/penguinlens/config"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(g))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "-" {
				return config.Write(cmd.OutOrStdout(), config.Default())
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return exitError(ExitInvalidArgs, "%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return exitError(ExitInvalidArgs, "stat %s: %v", path, err)
				}
			}
			f, err := os.Create(path) //nolint:gosec // user-provided config path
			if err != nil {
				return exitError(ExitInvalidArgs, "create %s: %v", path, err)
			}
			if err := config.Write(f, config.Default()); err != nil {
				_ = f.Close()
				return exitError(ExitInvalidArgs, "write %s: %v", path, err)
			}
			if err := f.Close(); err != nil {
				return exitError(ExitInvalidArgs, "write %s: %v", path, err)
			}
			green := color.New(color.FgGreen)
			green.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "out", "o", config.FileName, `file to write ("-" for stdout)`)
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if err := config.Write(cmd.OutOrStdout(), cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			return nil
		},
	}
}
