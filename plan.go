package fragset

import (
	"regexp"
	"strings"
)

// DomainSeed is one sitemap-discovered source: a domain plus a glob pattern
// selecting the URLs worth fetching, and a per-domain cap.
type DomainSeed struct {
	Domain  string `yaml:"domain"`
	Pattern string `yaml:"pattern"`
	MaxURLs int    `yaml:"max_urls"`
}

// CrawlSeed is one deep-crawl starting point for negative collection. The
// crawl follows same-host links matching URLPatterns breadth-first, bounded
// by MaxDepth and MaxPages.
type CrawlSeed struct {
	SeedURL     string   `yaml:"seed_url"`
	MaxPages    int      `yaml:"max_pages"`
	MaxDepth    int      `yaml:"max_depth"`
	URLPatterns []string `yaml:"url_patterns"`
}

// CategoryPlan configures collection for one fragment type. A category uses
// either sitemap discovery (Domains) or deep crawling (DeepCrawl); auth-wall
// hunting needs link following, everything else has sitemaps.
type CategoryPlan struct {
	Type      string       `yaml:"type"`
	Domains   []DomainSeed `yaml:"domains,omitempty"`
	DeepCrawl []CrawlSeed  `yaml:"deep_crawl,omitempty"`
}

// Plan is the full seed plan driving a collection run.
type Plan struct {
	Categories []CategoryPlan `yaml:"categories"`
}

// Category returns the plan for the named fragment type.
// Returns ENOTFOUND if the plan has no such category.
func (p *Plan) Category(name string) (*CategoryPlan, error) {
	for i := range p.Categories {
		if p.Categories[i].Type == name {
			return &p.Categories[i], nil
		}
	}
	return nil, Errorf(ENOTFOUND, "no category %q in plan (available: %s)", name, strings.Join(p.CategoryNames(), ", "))
}

// CategoryNames returns the category names in plan order.
func (p *Plan) CategoryNames() []string {
	names := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		names[i] = c.Type
	}
	return names
}

// Validate returns an error if the plan is structurally unusable.
func (p *Plan) Validate() error {
	if len(p.Categories) == 0 {
		return Errorf(EINVALID, "plan has no categories")
	}
	seen := make(map[string]bool)
	for _, c := range p.Categories {
		if c.Type == "" {
			return Errorf(EINVALID, "category missing type")
		}
		if seen[c.Type] {
			return Errorf(EINVALID, "duplicate category %q", c.Type)
		}
		seen[c.Type] = true
		if len(c.Domains) == 0 && len(c.DeepCrawl) == 0 {
			return Errorf(EINVALID, "category %q has no domains or deep-crawl seeds", c.Type)
		}
		if len(c.Domains) > 0 && len(c.DeepCrawl) > 0 {
			return Errorf(EINVALID, "category %q mixes sitemap domains and deep-crawl seeds", c.Type)
		}
		for _, d := range c.Domains {
			if d.Domain == "" {
				return Errorf(EINVALID, "category %q has a domain seed without a domain", c.Type)
			}
		}
		for _, s := range c.DeepCrawl {
			if s.SeedURL == "" {
				return Errorf(EINVALID, "category %q has a deep-crawl seed without a seed_url", c.Type)
			}
		}
	}
	return nil
}

// CompileGlobFilter converts URL glob patterns ("*/recipe/*", "*/login*")
// into a URLFilter with one include regexp per pattern. Only the * wildcard
// is special; everything else matches literally. Empty or all-glob input
// yields a nil filter, which matches everything.
func CompileGlobFilter(patterns ...string) (*URLFilter, error) {
	var includes []*regexp.Regexp
	for _, pattern := range patterns {
		if pattern == "" || pattern == "*" || pattern == "*/*" {
			continue
		}
		re, err := regexp.Compile(globToRegexp(pattern))
		if err != nil {
			return nil, Errorf(EINVALID, "invalid URL pattern %q: %v", pattern, err)
		}
		includes = append(includes, re)
	}
	if len(includes) == 0 {
		return nil, nil
	}
	return &URLFilter{Include: includes}, nil
}

func globToRegexp(glob string) string {
	parts := strings.Split(glob, "*")
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	return "^" + strings.Join(parts, ".*") + "$"
}
