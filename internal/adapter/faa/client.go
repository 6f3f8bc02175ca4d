package faa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/aircraft-registry-etl/internal/observability"
)

// browserUserAgent mimics a desktop browser. The FAA registry endpoint
// rejects requests carrying default library agents.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36"

// Client downloads FAA database archives over HTTP.
type Client struct {
	httpClient *http.Client
	clock      clockwork.Clock
	logger     *slog.Logger
}

// NewClient creates a download client. Timeout bounds the whole transfer;
// the full distribution runs to roughly 60 MB, so keep it generous.
func NewClient(timeout time.Duration, clock clockwork.Clock, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		clock:      clock,
		logger:     logger,
	}
}

// Download streams the body at url into dest, reporting progress bounded
// by the response size header when one is sent. A transport failure or a
// non-success status (anything outside 2xx) yields a *DownloadError; the
// run never retries.
func (c *Client) Download(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dest, err)
	}
	defer f.Close()

	progress := observability.NewProgress(c.clock, c.logger, "download", resp.ContentLength)
	written, err := io.Copy(f, progress.Reader(resp.Body))
	if err != nil {
		return 0, &DownloadError{URL: url, Err: err}
	}
	progress.Done()

	return written, nil
}
