// Package yaml loads the collection seed plan from YAML files.
package yaml

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mzalewski/fragset"
)

// LoadPlan reads and validates a seed plan from a YAML file. Unknown keys
// are rejected so a typoed field fails loudly instead of silently dropping
// seeds.
func LoadPlan(path string) (*fragset.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePlan(data)
}

// ParsePlan parses and validates seed plan YAML.
func ParsePlan(data []byte) (*fragset.Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var plan fragset.Plan
	if err := dec.Decode(&plan); err != nil {
		return nil, fragset.Errorf(fragset.EINVALID, "malformed seed plan: %v", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// DefaultPlan returns the built-in seed plan: curated domains per positive
// type, deep-crawl seeds hunting auth walls, and likely-404 paths for error
// pages.
func DefaultPlan() *fragset.Plan {
	return &fragset.Plan{Categories: []fragset.CategoryPlan{
		{
			Type: "recipe",
			Domains: []fragset.DomainSeed{
				{Domain: "allrecipes.com", Pattern: "*/recipe/*", MaxURLs: 25},
				{Domain: "bbcgoodfood.com", Pattern: "*/recipes/*", MaxURLs: 25},
				{Domain: "seriouseats.com", Pattern: "*recipe*", MaxURLs: 25},
			},
		},
		{
			Type: "product",
			Domains: []fragset.DomainSeed{
				{Domain: "wirecutter.com", Pattern: "*/reviews/*", MaxURLs: 30},
				{Domain: "pcmag.com", Pattern: "*/reviews/*", MaxURLs: 30},
				{Domain: "techradar.com", Pattern: "*/reviews/*", MaxURLs: 30},
				{Domain: "cnet.com", Pattern: "*/products/*", MaxURLs: 30},
			},
		},
		{
			Type: "event",
			Domains: []fragset.DomainSeed{
				{Domain: "meetup.com", Pattern: "*/events/*", MaxURLs: 25},
				{Domain: "eventbrite.com", Pattern: "*/e/*", MaxURLs: 25},
				{Domain: "events.cornell.edu", Pattern: "*/event/*", MaxURLs: 20},
			},
		},
		{
			Type: "pricing_table",
			Domains: []fragset.DomainSeed{
				{Domain: "stripe.com", Pattern: "*/pricing*", MaxURLs: 15},
				{Domain: "airtable.com", Pattern: "*/pricing*", MaxURLs: 15},
				{Domain: "mongodb.com", Pattern: "*/pricing*", MaxURLs: 15},
			},
		},
		{
			Type: "job_posting",
			Domains: []fragset.DomainSeed{
				{Domain: "greenhouse.io", Pattern: "*/jobs/*", MaxURLs: 50},
				{Domain: "lever.co", Pattern: "*/jobs/*", MaxURLs: 50},
			},
		},
		{
			Type: "person",
			Domains: []fragset.DomainSeed{
				{Domain: "about.me", Pattern: "*/*", MaxURLs: 30},
				{Domain: "faculty.washington.edu", Pattern: "*/*", MaxURLs: 30},
			},
		},
		{
			Type: "auth_required",
			DeepCrawl: []fragset.CrawlSeed{
				{SeedURL: "https://github.com", MaxPages: 10, URLPatterns: authURLPatterns()},
				{SeedURL: "https://gitlab.com", MaxPages: 10, URLPatterns: authURLPatterns()},
				{SeedURL: "https://www.linkedin.com", MaxPages: 10, URLPatterns: authURLPatterns()},
				{SeedURL: "https://medium.com", MaxPages: 10, URLPatterns: authURLPatterns()},
				{SeedURL: "https://www.reddit.com", MaxPages: 10, URLPatterns: authURLPatterns()},
			},
		},
		{
			Type: "error_page",
			Domains: []fragset.DomainSeed{
				{Domain: "github.com", Pattern: "*/nonexistent-*", MaxURLs: 10},
				{Domain: "medium.com", Pattern: "*/deleted-*", MaxURLs: 10},
				{Domain: "reddit.com", Pattern: "*/r/nonexistent*", MaxURLs: 10},
			},
		},
	}}
}

// authURLPatterns are the deep-crawl link filters that lead to login pages.
func authURLPatterns() []string {
	return []string{
		"*/login*",
		"*/signin*",
		"*/sign-in*",
		"*/auth*",
		"*/accounts/*",
		"*/user/login*",
	}
}
