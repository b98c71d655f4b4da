// Package fetch downloads source files over HTTP.
package fetch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vvka-141/tripload/pkg/tripload"
)

// Fetcher retrieves remote files into memory. It implements
// tripload.Fetcher.
type Fetcher struct {
	client *http.Client
	logger tripload.Logger
}

// NewFetcher creates a Fetcher whose requests are bounded by timeout.
// A non-positive timeout falls back to tripload.DefaultFetchTimeout.
// Panics if logger is nil.
func NewFetcher(timeout time.Duration, logger tripload.Logger) *Fetcher {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if timeout <= 0 {
		timeout = tripload.DefaultFetchTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch downloads url and returns the full response body. Any failure,
// including a non-2xx status, wraps tripload.ErrFetchFailed.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.logger.Verbose("Fetching %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %w", tripload.ErrFetchFailed, url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tripload.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", tripload.ErrFetchFailed, url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s: %w", tripload.ErrFetchFailed, url, err)
	}

	f.logger.Info("Fetched %d bytes from %s", len(body), url)
	f.logger.Verbose("Payload SHA-256: %x", sha256.Sum256(body))
	return body, nil
}
