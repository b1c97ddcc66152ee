package fragset

import (
	"context"
	"regexp"
)

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap.
	// It first checks robots.txt for sitemap directives, then falls back
	// to /sitemap.xml. Sitemap indexes are resolved recursively.
	//
	// The filter can be used to include/exclude URLs by pattern.
	// If filter is nil, all URLs are returned.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// SampledURL is one entry sampled from a crawl index.
type SampledURL struct {
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
}

// IndexSampler samples diverse URLs from an external crawl index, such as
// Common Crawl's CDX API. Results are deduplicated by domain.
type IndexSampler interface {
	// LatestIndex returns the identifier of the most recent index.
	LatestIndex(ctx context.Context) (string, error)

	// Sample returns up to limit URLs matching the pattern from the index,
	// keeping at most one URL per domain.
	Sample(ctx context.Context, indexID, pattern string, limit int) ([]SampledURL, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	// If include patterns exist, URL must match at least one
	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Check exclude patterns
	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
