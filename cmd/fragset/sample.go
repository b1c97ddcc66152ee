package main

import (
	"fmt"
	"math/rand"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/crawl"
)

// tldPatterns spreads sampling across top-level domains so no single
// registry dominates the dataset.
var tldPatterns = []string{
	"*.edu/*",
	"*.org/*",
	"*.gov/*",
	"*.com/*",
	"*.io/*",
	"*.net/*",
}

// Run executes the sample command.
func (c *SampleCmd) Run(deps *Dependencies) error {
	indexID, err := deps.Sampler.LatestIndex(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Using index: %s\n", indexID)

	var samples []fragset.SampledURL
	for _, pattern := range tldPatterns {
		urls, err := deps.Sampler.Sample(deps.Ctx, indexID, pattern, c.PerPattern)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", pattern, err)
			continue
		}
		fmt.Fprintf(deps.Stdout, "  %s: %d unique domains\n", pattern, len(urls))
		samples = append(samples, urls...)
	}
	if len(samples) == 0 {
		return fragset.Errorf(fragset.ENOTFOUND, "no URLs sampled from index %s", indexID)
	}

	rng := rand.New(rand.NewSource(c.Seed))
	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})

	entries, err := deps.Pages.FetchAll(deps.Ctx, samples, c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}

	manifestPath, err := crawl.WriteManifest(c.Output, entries)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%d failed)\n", len(entries), len(samples)-len(entries))
	fmt.Fprintf(deps.Stdout, "Manifest: %s\n", manifestPath)
	return nil
}
