package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the public catalog used when none is configured
const DefaultBaseURL = "https://dummyjson.com"

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Search  SearchConfig  `mapstructure:"search"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// CatalogConfig holds remote catalog configuration
type CatalogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Limit   int           `mapstructure:"limit"` // 0 = all matching items
}

// SearchConfig holds free-text search configuration
type SearchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
}

// Debounce returns the search debounce delay
func (s SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns int      `mapstructure:"grid_columns"`
	OpenCommand string   `mapstructure:"open_command"` // empty = system default
	OpenArgs    []string `mapstructure:"open_args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// MetricsConfig holds the Prometheus listener configuration
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // empty disables the listener
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL: DefaultBaseURL,
			Timeout: 15 * time.Second,
			Limit:   0,
		},
		Search: SearchConfig{
			DebounceMS: 500,
		},
		UI: UIConfig{
			GridColumns: 3,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "aisle", "aisle.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "aisle", "aisle.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "aisle")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "aisle")
	}
}

// DefaultConfigFile returns the path SaveConfig writes to when none is given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// setDefaults registers every default with v so env overrides apply to
// keys that are absent from the file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("catalog.limit", cfg.Catalog.Limit)
	v.SetDefault("search.debounce_ms", cfg.Search.DebounceMS)
	v.SetDefault("ui.grid_columns", cfg.UI.GridColumns)
	v.SetDefault("ui.open_command", cfg.UI.OpenCommand)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("metrics.addr", cfg.Metrics.Addr)
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default locations.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. AISLE_CATALOG_BASE_URL
	v.SetEnvPrefix("AISLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail much later
func (c *Config) Validate() error {
	u, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("catalog.base_url must be an absolute URL, got %q", c.Catalog.BaseURL)
	}
	if c.Catalog.Limit < 0 {
		return fmt.Errorf("catalog.limit must not be negative, got %d", c.Catalog.Limit)
	}
	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("search.debounce_ms must not be negative, got %d", c.Search.DebounceMS)
	}
	if c.UI.GridColumns < 1 {
		c.UI.GridColumns = 1
	}
	return nil
}

// SaveConfig writes cfg as YAML. An empty path writes DefaultConfigFile().
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("catalog.base_url", cfg.Catalog.BaseURL)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())
	v.Set("catalog.limit", cfg.Catalog.Limit)

	v.Set("search.debounce_ms", cfg.Search.DebounceMS)

	v.Set("ui.grid_columns", cfg.UI.GridColumns)
	if cfg.UI.OpenCommand != "" {
		v.Set("ui.open_command", cfg.UI.OpenCommand)
		v.Set("ui.open_args", cfg.UI.OpenArgs)
	}

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.Set("metrics.addr", cfg.Metrics.Addr)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
