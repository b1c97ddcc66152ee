package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mzalewski/fragset"
)

// minSampleHTMLBytes rejects pages too small to contain a real document.
const minSampleHTMLBytes = 500

// ManifestFilename is the manifest written next to sampled HTML files.
const ManifestFilename = "dataset_manifest.json"

// Sampler bulk-fetches index-sampled URLs and persists the pages that pass
// basic sanity checks. This stage trades precision for throughput; the
// quality filter stage does the real vetting.
type Sampler struct {
	Fetcher     fragset.Fetcher
	Concurrency int
	RetryDelays []time.Duration
}

// FetchAll fetches the sampled URLs concurrently, saving each valid page as
// NNNN.html under outputDir and returning manifest entries in sample order.
// A page is valid when it answers 200 with at least minSampleHTMLBytes of
// body containing an html or body tag. Failed URLs are silently dropped.
func (s *Sampler) FetchAll(ctx context.Context, samples []fragset.SampledURL, outputDir string) ([]fragset.ManifestEntry, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	// Positional results keep filenames stable regardless of completion
	// order.
	entries := make([]*fragset.ManifestEntry, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, sample := range samples {
		g.Go(func() error {
			fetched, err := FetchWithRetryDelays(gctx, sample.URL, s.Fetcher.Fetch, delays)
			if err != nil || fetched.StatusCode != http.StatusOK {
				return nil
			}
			if !isPlausibleHTML(fetched.HTML) {
				return nil
			}

			filename := fmt.Sprintf("%04d.html", i)
			path := filepath.Join(outputDir, filename)
			if err := os.WriteFile(path, []byte(fetched.HTML), 0o644); err != nil {
				return err
			}

			entries[i] = &fragset.ManifestEntry{
				ID:       fmt.Sprintf("%04d", i),
				URL:      sample.URL,
				Domain:   sample.Domain,
				Category: sample.Category,
				HTMLFile: path,
				Size:     len(fetched.HTML),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	valid := make([]fragset.ManifestEntry, 0, len(samples))
	for _, e := range entries {
		if e != nil {
			valid = append(valid, *e)
		}
	}
	return valid, nil
}

// WriteManifest persists manifest entries as JSON under outputDir.
func WriteManifest(outputDir string, entries []fragset.ManifestEntry) (string, error) {
	path := filepath.Join(outputDir, ManifestFilename)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(outputDir string) ([]fragset.ManifestEntry, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, ManifestFilename))
	if err != nil {
		return nil, err
	}
	var entries []fragset.ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fragset.Errorf(fragset.EINVALID, "malformed manifest: %v", err)
	}
	return entries, nil
}

// isPlausibleHTML applies the sampling stage's cheap sanity checks.
func isPlausibleHTML(html string) bool {
	if len(html) < minSampleHTMLBytes {
		return false
	}
	lower := strings.ToLower(html)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<body")
}
