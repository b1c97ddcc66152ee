// Package crawl orchestrates fragment collection: sitemap-driven fetching
// of positive sources, breadth-first deep crawling for negative sources,
// and bulk sampling from crawl indexes.
package crawl

import (
	"strings"
	"sync"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/bloom"
)

// Compile-time interface verification.
var _ fragset.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory breadth-first URL frontier with Bloom filter
// deduplication. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []fragset.CrawlLink
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication, so URLs differing only
// by fragment are considered duplicates.
func (f *Frontier) Push(link fragset.CrawlLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	link.URL = url
	f.queue = append(f.queue, link)
	return true
}

// Pop returns the next link in breadth-first order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (fragset.CrawlLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return fragset.CrawlLink{}, false
	}
	link := f.queue[0]
	f.queue = f.queue[1:]
	return link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
