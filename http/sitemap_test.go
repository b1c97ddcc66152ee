package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzalewski/fragset"
	fragsethttp "github.com/mzalewski/fragset/http"
)

// newTestServer serves the given path->body map, substituting {{BASE}} in
// bodies with the server's own URL so sitemaps can reference themselves.
func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", server.URL)))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("discovers URLs from robots.txt sitemap directive", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]string{
			"/robots.txt": "User-agent: *\nSitemap: {{BASE}}/sitemap.xml\n",
			"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/recipes/pancakes</loc></url>
  <url><loc>{{BASE}}/recipes/soup</loc></url>
</urlset>`,
		})

		svc := fragsethttp.NewSitemapService(server.Client())
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			server.URL + "/recipes/pancakes",
			server.URL + "/recipes/soup",
		}, urls)
	})

	t.Run("falls back to /sitemap.xml when robots.txt is missing", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]string{
			"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/products/widget</loc></url>
</urlset>`,
		})

		svc := fragsethttp.NewSitemapService(server.Client())
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/products/widget"}, urls)
	})

	t.Run("resolves sitemap indexes recursively", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]string{
			"/robots.txt": "Sitemap: {{BASE}}/sitemap_index.xml\n",
			"/sitemap_index.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap_recipes.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap_events.xml</loc></sitemap>
</sitemapindex>`,
			"/sitemap_recipes.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/recipes/bread</loc></url>
</urlset>`,
			"/sitemap_events.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/events/summer-fair</loc></url>
</urlset>`,
		})

		svc := fragsethttp.NewSitemapService(server.Client())
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			server.URL + "/recipes/bread",
			server.URL + "/events/summer-fair",
		}, urls)
	})

	t.Run("does not loop on self-referencing sitemap index", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]string{
			"/robots.txt": "Sitemap: {{BASE}}/sitemap.xml\n",
			"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap_pages.xml</loc></sitemap>
</sitemapindex>`,
			"/sitemap_pages.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/pages/about</loc></url>
</urlset>`,
		})

		svc := fragsethttp.NewSitemapService(server.Client())
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/pages/about"}, urls)
	})

	t.Run("applies URL filter include and exclude patterns", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]string{
			"/robots.txt": "Sitemap: {{BASE}}/sitemap.xml\n",
			"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/recipes/pie</loc></url>
  <url><loc>{{BASE}}/recipes/print/pie</loc></url>
  <url><loc>{{BASE}}/about</loc></url>
</urlset>`,
		})

		filter := &fragset.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/recipes/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/print/`)},
		}

		svc := fragsethttp.NewSitemapService(server.Client())
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/recipes/pie"}, urls)
	})

	t.Run("deduplicates URLs listed in multiple sitemaps", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]string{
			"/robots.txt": "Sitemap: {{BASE}}/sitemap_a.xml\nSitemap: {{BASE}}/sitemap_b.xml\n",
			"/sitemap_a.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/jobs/engineer</loc></url>
</urlset>`,
			"/sitemap_b.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/jobs/engineer</loc></url>
  <url><loc>{{BASE}}/jobs/designer</loc></url>
</urlset>`,
		})

		svc := fragsethttp.NewSitemapService(server.Client())
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			server.URL + "/jobs/engineer",
			server.URL + "/jobs/designer",
		}, urls)
	})

	t.Run("returns empty slice when site has no sitemap", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]string{})

		svc := fragsethttp.NewSitemapService(server.Client())
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})

	t.Run("returns EINVALID for malformed base URL", func(t *testing.T) {
		t.Parallel()

		svc := fragsethttp.NewSitemapService(nil)
		_, err := svc.DiscoverURLs(context.Background(), "://not-a-url", nil)
		require.Error(t, err)
		assert.Equal(t, fragset.EINVALID, fragset.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, map[string]string{
			"/robots.txt": "Sitemap: {{BASE}}/sitemap.xml\n",
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := fragsethttp.NewSitemapService(server.Client())
		_, err := svc.DiscoverURLs(ctx, server.URL, nil)
		require.Error(t, err)
	})
}
