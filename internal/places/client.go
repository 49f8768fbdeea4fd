// Package places turns Google Maps share links into pre-filled item
// drafts. Lookups against the Places API are best-effort enrichment;
// when the API is unavailable or unconfigured the importer falls back
// to parsing the link itself and never returns an error.
package places

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/linknest/linknest-server/internal/config"
	"github.com/linknest/linknest-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// Rate limit: 2 requests per second per endpoint, burst of 4.
	// An import makes at most two sequential calls.
	defaultRPS   = 2.0
	defaultBurst = 4

	defaultTimeout = 5 * time.Second
)

// Client is a rate-limited Places API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.Limiter
	logger  *slog.Logger
	apiKey  string
	baseURL string
}

// New creates a new places client. An empty API key is valid: the
// client stays usable for URL-only extraction, it just never makes
// remote calls.
func New(cfg config.PlacesConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
	}
}

// Enabled reports whether remote lookups are configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
