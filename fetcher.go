package fragset

import "context"

// FetchResult is a fetched page: the body plus the HTTP status the server
// reported. StatusCode is retained so the classifier can short-circuit on
// status >= 400; a fetch error surfaces as an error, not as empty HTML.
type FetchResult struct {
	HTML       string
	StatusCode int
}

// Fetcher retrieves pages over HTTP. Implementations do not treat error
// statuses as failures: a 404 body is valuable negative-example material,
// so the result carries the status for the caller to interpret.
type Fetcher interface {
	// Fetch retrieves the URL's body and status.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}
