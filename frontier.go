package fragset

import "context"

// CrawlLink is a URL queued for deep crawling, with its BFS depth.
type CrawlLink struct {
	URL   string
	Depth int
}

// URLFrontier manages a breadth-first crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link CrawlLink) bool

	// Pop returns the next link in breadth-first order.
	// Returns false if the frontier is empty.
	Pop() (CrawlLink, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// LinkExtractor pulls outbound links from a fetched page for deep crawling.
type LinkExtractor interface {
	// ExtractLinks returns the absolute URLs of a page's anchors, resolved
	// against baseURL. Malformed HTML degrades to fewer links, never an
	// error.
	ExtractLinks(html string, baseURL string) []string
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
