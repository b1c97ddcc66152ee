package mock

import (
	"context"

	"github.com/mzalewski/fragset"
)

var _ fragset.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of fragset.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*fragset.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*fragset.FetchResult, error) {
	return f.FetchFn(ctx, url)
}
