// Package nflverse fetches the raw NFL datasets published as CSV release
// assets by the nflverse project.
//
// Requests are rate limited with a token bucket; each season of a
// year-aware dataset is a separate asset, fetched concurrently.
package nflverse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/gridiron-lab/nfl-data/internal/dataset"
)

const userAgent = "nfl-data/1.0 (+https://github.com/gridiron-lab/nfl-data)"

// UpstreamError reports a failed fetch of a release asset.
type UpstreamError struct {
	Dataset    string
	URL        string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s (%s): status %d", e.Dataset, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s (%s): %v", e.Dataset, e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client is the shared HTTP client for nflverse release assets.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a client with rate limiting.
func NewClient(timeout time.Duration, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 4),
		logger:     logger,
	}
}

// getCSV performs a rate-limited GET and decodes the body as CSV.
func (c *Client) getCSV(ctx context.Context, datasetID, url string) (*dataset.Table, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Dataset: datasetID, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		c.logger.Warn("nflverse request failed",
			"dataset", datasetID, "url", url, "status", resp.StatusCode, "body", truncate(body, 200))
		return nil, &UpstreamError{
			Dataset:    datasetID,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", truncate(body, 200)),
		}
	}

	tbl, err := dataset.ReadCSV(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Dataset: datasetID, URL: url, Err: fmt.Errorf("decode csv: %w", err)}
	}
	c.logger.Debug("nflverse asset fetched",
		"dataset", datasetID, "url", url, "rows", len(tbl.Rows),
		"duration", time.Since(start).Round(time.Millisecond))
	return tbl, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
