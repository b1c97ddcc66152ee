package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/crawl"
)

// Run executes the filter command.
func (c *FilterCmd) Run(deps *Dependencies) error {
	manifest, err := crawl.ReadManifest(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Analyzing %d pages...\n", len(manifest))

	reports := make([]fragset.PageReport, 0, len(manifest))
	for _, entry := range manifest {
		html, err := os.ReadFile(entry.HTMLFile)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", entry.HTMLFile, err)
			continue
		}

		report := fragset.PageReport{
			ManifestEntry: entry,
			PageAnalysis:  deps.Analyzer.Analyze(string(html)),
		}

		// A page trafilatura cannot pull main content from is a shell no
		// matter what its markup looks like.
		if mainText, err := deps.MainText.MainText(string(html)); err != nil || mainText == "" {
			report.HasAnomalies = true
		}

		report.TokenCount, err = deps.Tokens.CountTokens(deps.Ctx, string(html))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", entry.HTMLFile, err)
			continue
		}

		report.Qualify()
		reports = append(reports, report)
	}

	selected := fragset.SelectBest(reports, c.TopN)
	if len(selected) == 0 {
		return fragset.Errorf(fragset.ENOTFOUND, "no eligible pages in %s", c.Dir)
	}

	var urls strings.Builder
	for _, report := range selected {
		urls.WriteString(report.URL)
		urls.WriteByte('\n')
	}
	if err := os.WriteFile(c.Output, []byte(urls.String()), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Selected %d of %d pages (quality %.1f - %.1f)\n",
		len(selected), len(reports),
		selected[len(selected)-1].QualityScore, selected[0].QualityScore)
	fmt.Fprintf(deps.Stdout, "URL list: %s\n", c.Output)
	return nil
}
