package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mmcdole/aisle/internal/adapter"
	"github.com/mmcdole/aisle/internal/filter"
	"github.com/mmcdole/aisle/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errNoTerminal is returned when the TUI is started without a terminal
var errNoTerminal = errors.New("aisle needs an interactive terminal; use 'aisle list' for scripted output")

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "aisle",
		Short: "Browse a product catalog from the terminal",
		Long: `Aisle browses a remote product catalog.

Run without a subcommand to open the interactive browser. Narrow the
results by category, search term and price order; the listing refreshes
whenever the selection changes.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (default ~/.config/aisle/config.yaml)")
	cmd.SetVersionTemplate("aisle {{.Version}}\n")

	cmd.AddCommand(
		newListCmd(opts),
		newCategoriesCmd(opts),
		newInitCmd(opts),
	)
	return cmd
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	a, err := newApp(opts.configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting aisle", "version", Version, "catalog", a.source.BaseURL())

	err = tui.Run(cmd.Context(), tui.Deps{
		Store:      filter.NewStore(),
		Fetcher:    a.newFetcher(),
		Categories: a.categories,
		Debounce:   a.cfg.Search.Debounce(),
		Columns:    a.cfg.UI.GridColumns,
		Opener:     adapter.NewOpenerFromConfig(a.cfg, a.logger),
		Logger:     a.logger,
	})
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
