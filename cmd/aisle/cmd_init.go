package main

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mmcdole/aisle/internal/adapter"
	"github.com/spf13/cobra"
)

func newInitCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or update the config file interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, root)
		},
	}
}

// initAnswers holds the form fields as text so the form can edit them
type initAnswers struct {
	BaseURL     string
	Limit       string
	DebounceMS  string
	GridColumns string
	LogLevel    string
	MetricsAddr string
}

func answersFromConfig(cfg *adapter.Config) initAnswers {
	return initAnswers{
		BaseURL:     cfg.Catalog.BaseURL,
		Limit:       strconv.Itoa(cfg.Catalog.Limit),
		DebounceMS:  strconv.Itoa(cfg.Search.DebounceMS),
		GridColumns: strconv.Itoa(cfg.UI.GridColumns),
		LogLevel:    strings.ToUpper(cfg.Logging.Level),
		MetricsAddr: cfg.Metrics.Addr,
	}
}

// apply copies the answers onto cfg. Answers must have passed validation.
func (a initAnswers) apply(cfg *adapter.Config) error {
	var err error
	cfg.Catalog.BaseURL = strings.TrimSpace(a.BaseURL)
	if cfg.Catalog.Limit, err = strconv.Atoi(strings.TrimSpace(a.Limit)); err != nil {
		return fmt.Errorf("limit: %w", err)
	}
	if cfg.Search.DebounceMS, err = strconv.Atoi(strings.TrimSpace(a.DebounceMS)); err != nil {
		return fmt.Errorf("debounce: %w", err)
	}
	if cfg.UI.GridColumns, err = strconv.Atoi(strings.TrimSpace(a.GridColumns)); err != nil {
		return fmt.Errorf("grid columns: %w", err)
	}
	cfg.Logging.Level = a.LogLevel
	cfg.Metrics.Addr = strings.TrimSpace(a.MetricsAddr)
	return cfg.Validate()
}

func runInit(cmd *cobra.Command, root *rootOptions) error {
	cfg, err := adapter.LoadConfig(root.configPath)
	if err != nil {
		// A broken file is replaced rather than preventing setup
		cfg = adapter.DefaultConfig()
	}
	answers := answersFromConfig(cfg)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Catalog URL").
				Description("Base URL of a dummyjson-compatible API").
				Value(&answers.BaseURL).
				Validate(validateBaseURL),
			huh.NewInput().
				Title("Result limit").
				Description("0 fetches every matching product").
				Value(&answers.Limit).
				Validate(validateNonNegative("Limit")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Search delay (ms)").
				Value(&answers.DebounceMS).
				Validate(validateNonNegative("Search delay")),
			huh.NewInput().
				Title("Grid columns").
				Value(&answers.GridColumns).
				Validate(validatePositive("Grid columns")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("DEBUG", "INFO", "WARN", "ERROR")...).
				Value(&answers.LogLevel),
			huh.NewInput().
				Title("Metrics address").
				Description("host:port for /metrics, empty to disable").
				Value(&answers.MetricsAddr),
		),
	)

	if err := form.RunWithContext(cmd.Context()); err != nil {
		return handleFormError(err)
	}

	if err := answers.apply(cfg); err != nil {
		return err
	}

	path := root.configPath
	if path == "" {
		path = adapter.DefaultConfigFile()
	}
	if err := adapter.SaveConfig(cfg, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration saved to %s\n", path)
	return nil
}

func handleFormError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return errors.New("Enter an absolute URL, e.g. https://dummyjson.com")
	}
	return nil
}

func validateNonNegative(field string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a whole number, 0 or more", field)
		}
		return nil
	}
}

func validatePositive(field string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a whole number, 1 or more", field)
		}
		return nil
	}
}
