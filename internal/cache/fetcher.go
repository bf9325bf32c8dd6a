package cache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	// DefaultMaxImageBytes bounds a single in-flight payload
	DefaultMaxImageBytes = 8 * 1024 * 1024

	userAgent = "Marquee/1.0"
)

// Fetcher retrieves the raw bytes behind a URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f(ctx, url)
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// HTTPFetcher downloads images over HTTP. It does not retry.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
	logger   *slog.Logger
}

// NewHTTPFetcher creates a fetcher. A nil client uses http.DefaultClient and
// a non-positive maxBytes uses DefaultMaxImageBytes.
func NewHTTPFetcher(client *http.Client, maxBytes int64, logger *slog.Logger) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPFetcher{
		client:   client,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Fetch performs a GET and returns the response body
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	f.logger.Debug("image request", "url", url)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrFetchFailed, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", domain.ErrFetchFailed, f.maxBytes)
	}
	return body, nil
}
