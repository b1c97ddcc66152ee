package crawl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/mzalewski/fragset"
)

// Collector orchestrates fragment collection for a seed plan. Positive
// categories are gathered through sitemap discovery; negative categories
// (auth walls) through breadth-first deep crawling from seed pages.
type Collector struct {
	Sitemaps    fragset.SitemapService
	Fetcher     fragset.Fetcher
	Extractor   fragset.FragmentExtractor
	Links       fragset.LinkExtractor
	Classifier  fragset.Classifier
	Store       fragset.FragmentStore
	Index       fragset.FragmentIndex
	RateLimiter fragset.DomainLimiter
	RetryDelays []time.Duration
}

// Result holds the outcome of a collection run.
type Result struct {
	Discovered int
	Collected  int
	Rejected   int
	Failed     int
}

func (r *Result) add(other *Result) {
	r.Discovered += other.Discovered
	r.Collected += other.Collected
	r.Rejected += other.Rejected
	r.Failed += other.Failed
}

// ProgressEvent reports progress during a collection run.
type ProgressEvent struct {
	Type         ProgressType
	FragmentType string
	URL          string
	Verdict      *fragset.Verdict
	Error        error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressDiscovered ProgressType = iota
	ProgressCollected
	ProgressRejected
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting collection progress.
type ProgressFunc func(event ProgressEvent)

// Deep crawl defaults.
const (
	// frontierExpectedURLs sizes the Bloom filter behind the frontier.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable dedup false positive rate.
	frontierFalsePositiveRate = 0.01
	// defaultMaxDepth bounds deep crawls that don't configure a depth.
	defaultMaxDepth = 2
	// defaultMaxPages bounds deep crawls that don't configure a page cap.
	defaultMaxPages = 10
	// defaultMaxURLs bounds sitemap seeds that don't configure a cap.
	defaultMaxURLs = 25
)

// Collect runs the plan's categories, or only the named ones when
// categories is non-empty. The progress callback, if provided, receives
// events as collection proceeds.
func (c *Collector) Collect(ctx context.Context, plan *fragset.Plan, categories []string, progress ProgressFunc) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	selected := plan.Categories
	if len(categories) > 0 {
		selected = make([]fragset.CategoryPlan, 0, len(categories))
		for _, name := range categories {
			cat, err := plan.Category(name)
			if err != nil {
				return nil, err
			}
			selected = append(selected, *cat)
		}
	}

	runID := uuid.NewString()
	total := &Result{}
	for i := range selected {
		result, err := c.collectCategory(ctx, &selected[i], runID, progress)
		if err != nil {
			return nil, err
		}
		total.add(result)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}
	return total, nil
}

// collectCategory dispatches one category to sitemap or deep-crawl
// collection.
func (c *Collector) collectCategory(ctx context.Context, cat *fragset.CategoryPlan, runID string, progress ProgressFunc) (*Result, error) {
	if len(cat.DeepCrawl) > 0 {
		total := &Result{}
		for _, seed := range cat.DeepCrawl {
			result, err := c.deepCrawl(ctx, cat.Type, seed, runID, progress)
			if err != nil {
				return nil, err
			}
			total.add(result)
		}
		return total, nil
	}
	return c.collectFromSitemaps(ctx, cat, runID, progress)
}

// collectFromSitemaps discovers URLs per domain seed and processes each one
// sequentially, rate limited per domain.
func (c *Collector) collectFromSitemaps(ctx context.Context, cat *fragset.CategoryPlan, runID string, progress ProgressFunc) (*Result, error) {
	result := &Result{}

	for _, seed := range cat.Domains {
		filter, err := fragset.CompileGlobFilter(seed.Pattern)
		if err != nil {
			return nil, err
		}

		baseURL := seed.Domain
		if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" {
			baseURL = "https://" + seed.Domain
		}

		urls, err := c.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
		if err != nil {
			// A domain without a reachable sitemap is a degraded source,
			// not a fatal plan error.
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, FragmentType: cat.Type, URL: baseURL, Error: err})
			}
			continue
		}

		maxURLs := seed.MaxURLs
		if maxURLs <= 0 {
			maxURLs = defaultMaxURLs
		}
		if len(urls) > maxURLs {
			urls = urls[:maxURLs]
		}
		result.Discovered += len(urls)
		if progress != nil {
			progress(ProgressEvent{Type: ProgressDiscovered, FragmentType: cat.Type, URL: baseURL})
		}

		for _, pageURL := range urls {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			c.processURL(ctx, pageURL, cat.Type, runID, result, progress)
		}
	}

	return result, nil
}

// deepCrawl follows same-host links breadth-first from a seed page,
// classifying and storing every visited page. URL patterns gate which
// discovered links join the frontier; the seed itself is always visited.
func (c *Collector) deepCrawl(ctx context.Context, fragmentType string, seed fragset.CrawlSeed, runID string, progress ProgressFunc) (*Result, error) {
	filter, err := fragset.CompileGlobFilter(seed.URLPatterns...)
	if err != nil {
		return nil, err
	}

	maxDepth := seed.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	maxPages := seed.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	seedURL, err := url.Parse(seed.SeedURL)
	if err != nil {
		return nil, fragset.Errorf(fragset.EINVALID, "invalid seed URL %q: %v", seed.SeedURL, err)
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(fragset.CrawlLink{URL: seed.SeedURL, Depth: 0})

	result := &Result{}
	visited := 0

	for {
		link, ok := frontier.Pop()
		if !ok || visited >= maxPages {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		visited++
		result.Discovered++

		fetched := c.fetchPage(ctx, link.URL, fragmentType, result, progress)
		if fetched == nil {
			continue
		}

		// Expand the frontier before classification so a rejected page
		// still contributes its links.
		if c.Links != nil && link.Depth < maxDepth {
			for _, discovered := range c.Links.ExtractLinks(fetched.HTML, link.URL) {
				discoveredURL, err := url.Parse(discovered)
				if err != nil || discoveredURL.Host != seedURL.Host {
					continue
				}
				if !filter.Match(discovered) {
					continue
				}
				frontier.Push(fragset.CrawlLink{URL: discovered, Depth: link.Depth + 1})
			}
		}

		c.classifyAndStore(ctx, link.URL, fragmentType, fetched, runID, result, progress)
	}

	return result, nil
}

// processURL fetches, classifies, and stores a single discovered URL.
func (c *Collector) processURL(ctx context.Context, pageURL, fragmentType, runID string, result *Result, progress ProgressFunc) {
	fetched := c.fetchPage(ctx, pageURL, fragmentType, result, progress)
	if fetched == nil {
		return
	}
	c.classifyAndStore(ctx, pageURL, fragmentType, fetched, runID, result, progress)
}

// fetchPage rate limits and fetches one page with retry. A nil return means
// the failure has already been accounted for.
func (c *Collector) fetchPage(ctx context.Context, pageURL, fragmentType string, result *Result, progress ProgressFunc) *fragset.FetchResult {
	if c.RateLimiter != nil {
		if u, err := url.Parse(pageURL); err == nil {
			if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
				result.Failed++
				return nil
			}
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetched, err := FetchWithRetryDelays(ctx, pageURL, c.Fetcher.Fetch, delays)
	if err != nil {
		result.Failed++
		if progress != nil {
			progress(ProgressEvent{Type: ProgressFailed, FragmentType: fragmentType, URL: pageURL, Error: err})
		}
		return nil
	}
	return fetched
}

// classifyAndStore extracts the fragment, classifies it, and routes it to
// storage, recording the outcome in the index when one is configured.
func (c *Collector) classifyAndStore(ctx context.Context, pageURL, fragmentType string, fetched *fragset.FetchResult, runID string, result *Result, progress ProgressFunc) {
	fragmentHTML := fetched.HTML
	if c.Extractor != nil {
		fragmentHTML = c.Extractor.ExtractFragment(fetched.HTML, fragmentType)
	}
	if fragmentHTML == "" {
		result.Failed++
		if progress != nil {
			progress(ProgressEvent{
				Type:         ProgressFailed,
				FragmentType: fragmentType,
				URL:          pageURL,
				Error:        fmt.Errorf("no fragment extracted"),
			})
		}
		return
	}

	frag := &fragset.Fragment{
		HTML:       fragmentHTML,
		Type:       fragmentType,
		SourceURL:  pageURL,
		StatusCode: fetched.StatusCode,
	}
	verdict := c.Classifier.Classify(frag)

	if _, err := c.Store.Store(ctx, frag, verdict); err != nil {
		result.Failed++
		if progress != nil {
			progress(ProgressEvent{Type: ProgressFailed, FragmentType: fragmentType, URL: pageURL, Error: err})
		}
		return
	}

	if c.Index != nil {
		rec := &fragset.FragmentRecord{
			FragmentID:   frag.ID(),
			RunID:        runID,
			FragmentType: fragmentType,
			SourceURL:    pageURL,
			IsValid:      verdict.IsValid,
			Score:        verdict.Score,
			NegativeType: verdict.NegativeType,
			StoredAt:     time.Now().UTC().Format(time.RFC3339),
		}
		// Index failures don't lose data; the files on disk are the
		// source of truth.
		_ = c.Index.RecordFragment(ctx, rec)
	}

	eventType := ProgressCollected
	if verdict.IsValid {
		result.Collected++
	} else {
		result.Rejected++
		eventType = ProgressRejected
	}
	if progress != nil {
		progress(ProgressEvent{
			Type:         eventType,
			FragmentType: fragmentType,
			URL:          pageURL,
			Verdict:      &verdict,
		})
	}
}
