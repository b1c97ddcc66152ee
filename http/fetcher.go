// Package http provides HTTP-based implementations of fragset's fetch and
// discovery interfaces for collecting pages from live sites and crawl
// indexes.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mzalewski/fragset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the collector to remote sites.
const DefaultUserAgent = "fragset-collector/1.0"

// Ensure Fetcher implements fragset.Fetcher at compile time.
var _ fragset.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages over plain HTTP without JavaScript rendering.
// Error statuses are not failures here: a 404 page body is negative-example
// material, so the result carries the status for the caller to act on.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body and status code for the given URL. Transport
// failures return an error; HTTP error statuses do not.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*fragset.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &fragset.FetchResult{
		HTML:       string(body),
		StatusCode: resp.StatusCode,
	}, nil
}

// Close releases resources. A no-op for the plain HTTP fetcher.
func (f *Fetcher) Close() error {
	return nil
}
