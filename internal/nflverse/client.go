// Package nflverse downloads play-by-play and play-stat release assets from
// the nflverse-data GitHub releases and decodes them into the typed model.
//
// Assets are gzip-compressed CSV, one file per season. Rate limiting is
// handled via a token bucket limiter.
package nflverse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the nflverse-data release download root.
const DefaultBaseURL = "https://github.com/nflverse/nflverse-data/releases/download"

// Client is the HTTP client for nflverse release assets.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an nflverse download client with rate limiting.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// PlayByPlay downloads the raw play_by_play_{season}.csv.gz asset.
func (c *Client) PlayByPlay(ctx context.Context, season int) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/pbp/play_by_play_%d.csv.gz", season))
}

// PlayStats downloads the raw play_stats_{season}.csv.gz asset.
func (c *Client) PlayStats(ctx context.Context, season int) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/playstats/play_stats_%d.csv.gz", season))
}

// get performs a rate-limited GET request for one release asset and returns
// the compressed bytes as served.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nflverse %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	c.logger.Debug("downloaded asset", "path", path, "bytes", len(body), "elapsed", time.Since(start))
	return body, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
