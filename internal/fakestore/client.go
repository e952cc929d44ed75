package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shoploft/storefront-backend/internal/catalog"
	"github.com/shoploft/storefront-backend/pkg/config"
	"github.com/shoploft/storefront-backend/pkg/enums"
	"github.com/shoploft/storefront-backend/pkg/metrics"
)

// Client talks to a FakeStore-compatible product feed over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.CatalogMetrics
}

// New builds a feed client from the catalog configuration.
func New(cfg config.CatalogConfig, catalogMetrics *metrics.CatalogMetrics) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.FeedBaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("feed base url is required")
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    catalogMetrics,
	}, nil
}

// wireProduct mirrors the upstream JSON schema before validation.
type wireProduct struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

// List fetches products from the feed. A non-positive limit fetches all.
func (c *Client) List(ctx context.Context, limit int) ([]catalog.Product, error) {
	path := "/products"
	if limit > 0 {
		path = fmt.Sprintf("/products?limit=%d", limit)
	}

	started := time.Now()
	body, err := c.get(ctx, path)
	c.metrics.ObserveFetch("list_products", err, time.Since(started))
	if err != nil {
		return nil, err
	}

	var records []wireProduct
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decoding feed products: %w", err)
	}

	products := make([]catalog.Product, 0, len(records))
	for _, record := range records {
		product, err := record.toCatalog()
		if err != nil {
			return nil, fmt.Errorf("feed product %d: %w", record.ID, err)
		}
		products = append(products, product)
	}
	return products, nil
}

// Get fetches a single product. An upstream 404 or empty body maps to
// catalog.ErrNotFound.
func (c *Client) Get(ctx context.Context, id int64) (*catalog.Product, error) {
	started := time.Now()
	body, err := c.get(ctx, fmt.Sprintf("/products/%d", id))
	c.metrics.ObserveFetch("get_product", err, time.Since(started))
	if err != nil {
		return nil, err
	}

	// The upstream returns an empty body for unknown ids.
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil, catalog.ErrNotFound
	}

	var record wireProduct
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decoding feed product: %w", err)
	}

	product, err := record.toCatalog()
	if err != nil {
		return nil, fmt.Errorf("feed product %d: %w", record.ID, err)
	}
	return &product, nil
}

// Categories fetches the feed's category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	started := time.Now()
	body, err := c.get(ctx, "/products/categories")
	c.metrics.ObserveFetch("list_categories", err, time.Since(started))
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("decoding feed categories: %w", err)
	}
	return categories, nil
}

// Ping probes the feed with a cheap categories request so readiness can
// report upstream availability.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/products/categories")
	return err
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, catalog.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed response: %w", err)
	}
	return body, nil
}

// toCatalog validates the wire record and converts it to the domain type.
// Ratings are clamped rather than rejected.
func (w wireProduct) toCatalog() (catalog.Product, error) {
	if w.ID <= 0 {
		return catalog.Product{}, fmt.Errorf("invalid id %d", w.ID)
	}
	if strings.TrimSpace(w.Title) == "" {
		return catalog.Product{}, fmt.Errorf("missing title")
	}
	if w.Price < 0 {
		return catalog.Product{}, fmt.Errorf("negative price %f", w.Price)
	}

	rate := w.Rating.Rate
	if rate < 0 {
		rate = 0
	}
	if rate > 5 {
		rate = 5
	}
	count := w.Rating.Count
	if count < 0 {
		count = 0
	}

	return catalog.Product{
		ID:          w.ID,
		Title:       w.Title,
		Price:       decimal.NewFromFloat(w.Price).Round(2),
		Description: w.Description,
		Category:    w.Category,
		Image:       w.Image,
		Rating:      catalog.Rating{Rate: rate, Count: count},
		Source:      enums.ProductSourceCatalog,
	}, nil
}
