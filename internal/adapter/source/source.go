package source

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mmcdole/aisle/internal/adapter"
	"github.com/mmcdole/aisle/internal/adapter/source/dummyjson"
	"github.com/mmcdole/aisle/internal/domain"
)

// CatalogSource is what a catalog backend must implement
type CatalogSource interface {
	domain.CatalogRepository // FetchProducts, GetCategories

	BaseURL() string
}

// NewClient creates a CatalogSource for the configured catalog
func NewClient(cfg *adapter.CatalogConfig, logger *slog.Logger) (CatalogSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("catalog config is nil")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("catalog base URL is required")
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("catalog base URL must be absolute: %q", cfg.BaseURL)
	}

	return dummyjson.NewClient(cfg.BaseURL, cfg.Timeout, logger), nil
}

// NewClientFromConfig creates a CatalogSource from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (CatalogSource, error) {
	return NewClient(&cfg.Catalog, logger)
}
