package mock

import (
	"context"

	"github.com/mzalewski/fragset"
)

var _ fragset.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of fragset.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *fragset.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *fragset.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ fragset.IndexSampler = (*IndexSampler)(nil)

// IndexSampler is a mock implementation of fragset.IndexSampler.
type IndexSampler struct {
	LatestIndexFn func(ctx context.Context) (string, error)
	SampleFn      func(ctx context.Context, indexID, pattern string, limit int) ([]fragset.SampledURL, error)
}

func (s *IndexSampler) LatestIndex(ctx context.Context) (string, error) {
	return s.LatestIndexFn(ctx)
}

func (s *IndexSampler) Sample(ctx context.Context, indexID, pattern string, limit int) ([]fragset.SampledURL, error) {
	return s.SampleFn(ctx, indexID, pattern, limit)
}
