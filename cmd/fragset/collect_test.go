package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzalewski/fragset"
	main "github.com/mzalewski/fragset/cmd/fragset"
	"github.com/mzalewski/fragset/crawl"
	"github.com/mzalewski/fragset/mock"
)

const collectTestPlan = `categories:
  - type: recipe
    domains:
      - domain: example.com
        pattern: "*/recipe/*"
        max_urls: 5
`

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCmdCollect(t *testing.T) {
	t.Parallel()

	t.Run("collects fragments from sitemap plan", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *fragset.URLFilter) ([]string, error) {
				return []string{
					"https://example.com/recipe/pancakes",
					"https://example.com/recipe/waffles",
				}, nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*fragset.FetchResult, error) {
				return &fragset.FetchResult{HTML: "<div>ingredients</div>", StatusCode: 200}, nil
			},
		}
		classifier := &mock.Classifier{
			ClassifyFn: func(frag *fragset.Fragment) fragset.Verdict {
				return fragset.Verdict{IsValid: true, Score: 0.6}
			},
		}
		var stored []string
		store := &mock.FragmentStore{
			StoreFn: func(ctx context.Context, frag *fragset.Fragment, verdict fragset.Verdict) (*fragset.Artifacts, error) {
				stored = append(stored, frag.SourceURL)
				return &fragset.Artifacts{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Collector: &crawl.Collector{
				Sitemaps:    sitemaps,
				Fetcher:     fetcher,
				Classifier:  classifier,
				Store:       store,
				RetryDelays: []time.Duration{},
			},
		}

		cmd := &main.CollectCmd{Plan: writePlanFile(t, collectTestPlan)}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Len(t, stored, 2)
		assert.Contains(t, stdout.String(), "saved recipe")
		assert.Contains(t, stdout.String(), "Collected 2 fragments")
		assert.Empty(t, stderr.String())
	})

	t.Run("reports negatives separately", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *fragset.URLFilter) ([]string, error) {
				return []string{"https://example.com/recipe/login"}, nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*fragset.FetchResult, error) {
				return &fragset.FetchResult{HTML: "<form>password</form>", StatusCode: 200}, nil
			},
		}
		classifier := &mock.Classifier{
			ClassifyFn: func(frag *fragset.Fragment) fragset.Verdict {
				return fragset.Verdict{IsValid: false, NegativeType: "auth_required"}
			},
		}
		store := &mock.FragmentStore{
			StoreFn: func(ctx context.Context, frag *fragset.Fragment, verdict fragset.Verdict) (*fragset.Artifacts, error) {
				return &fragset.Artifacts{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Collector: &crawl.Collector{
				Sitemaps:    sitemaps,
				Fetcher:     fetcher,
				Classifier:  classifier,
				Store:       store,
				RetryDelays: []time.Duration{},
			},
		}

		cmd := &main.CollectCmd{Plan: writePlanFile(t, collectTestPlan)}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "negative recipe")
		assert.Contains(t, stdout.String(), "auth_required")
		assert.Contains(t, stdout.String(), "1 negatives")
	})

	t.Run("returns error for unknown category", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Collector: &crawl.Collector{},
		}

		cmd := &main.CollectCmd{
			Plan:       writePlanFile(t, collectTestPlan),
			Categories: []string{"gallery"},
		}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, fragset.ENOTFOUND, fragset.ErrorCode(err))
		assert.Contains(t, stderr.String(), "gallery")
	})

	t.Run("returns error for malformed plan file", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.CollectCmd{Plan: writePlanFile(t, "categories: [")}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, fragset.EINVALID, fragset.ErrorCode(err))
	})
}
