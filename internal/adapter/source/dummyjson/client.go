package dummyjson

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/mmcdole/aisle/internal/domain"
	"github.com/mmcdole/aisle/internal/metrics"
	"github.com/mmcdole/aisle/internal/query"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Aisle/1.0"
)

// Client implements domain.CatalogRepository for dummyjson-compatible APIs
type Client struct {
	builder    query.Builder
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog API client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		builder: query.NewBuilder(baseURL),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs a GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, endpoint, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "url", reqURL)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		// A superseded request is cancelled on purpose; keep the cause visible
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.logger.Error("catalog request failed", "url", reqURL, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	return body, nil
}

// FetchProducts loads one product listing from a URL built by query.Builder
func (c *Client) FetchProducts(ctx context.Context, rawURL string) (*domain.ProductPage, error) {
	body, err := c.doRequest(ctx, "products", rawURL)
	if err != nil {
		return nil, err
	}

	var resp ProductsResponse
	if err := sonic.ConfigStd.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err)
	}

	if resp.Products == nil {
		return nil, domain.ErrMalformedPayload
	}

	return MapProductPage(resp), nil
}

// GetCategories returns the category names in API order
func (c *Client) GetCategories(ctx context.Context) ([]string, error) {
	body, err := c.doRequest(ctx, "category-list", c.builder.CategoryList().URL())
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := sonic.ConfigStd.Unmarshal(body, &categories); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}
	return categories, nil
}

// BaseURL returns the catalog root this client talks to
func (c *Client) BaseURL() string {
	return c.builder.BaseURL
}
