package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mzalewski/fragset/goquery"
)

func TestFragmentExtractor(t *testing.T) {
	t.Parallel()

	extractor := goquery.NewFragmentExtractor()

	t.Run("prefers main for product pages", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav>Site nav</nav>
<main><h1>Widget Pro</h1><span class="price">$49.99</span></main>
</body></html>`

		fragment := extractor.ExtractFragment(html, "product")

		assert.True(t, strings.HasPrefix(fragment, "<main>"))
		assert.Contains(t, fragment, "Widget Pro")
		assert.NotContains(t, fragment, "Site nav")
	})

	t.Run("falls back to class match when no semantic tag", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="header">Top</div>
<div class="product-detail"><h1>Widget Pro</h1></div>
</body></html>`

		fragment := extractor.ExtractFragment(html, "product")

		assert.Contains(t, fragment, `class="product-detail"`)
		assert.NotContains(t, fragment, "Top")
	})

	t.Run("prefers article for recipes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<main><article class="recipe-card"><h1>Pancakes</h1></article></main>
</body></html>`

		fragment := extractor.ExtractFragment(html, "recipe")

		assert.True(t, strings.HasPrefix(fragment, "<article"))
	})

	t.Run("matches pricing section by class substring", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<section class="PricingPlans"><div>Basic $10</div></section>
</body></html>`

		fragment := extractor.ExtractFragment(html, "pricing_table")

		assert.Contains(t, fragment, "Basic $10")
		assert.True(t, strings.HasPrefix(fragment, "<section"))
	})

	t.Run("strips script and style tags from the fragment", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<main><script>track();</script><style>.x{}</style><h1>Widget</h1></main>
</body></html>`

		fragment := extractor.ExtractFragment(html, "product")

		assert.Contains(t, fragment, "Widget")
		assert.NotContains(t, fragment, "track()")
		assert.NotContains(t, fragment, "<style>")
	})

	t.Run("falls back to body when no probe matches", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="misc">Nothing typed here</div></body></html>`

		fragment := extractor.ExtractFragment(html, "person")

		assert.True(t, strings.HasPrefix(fragment, "<body>"))
		assert.Contains(t, fragment, "Nothing typed here")
	})

	t.Run("falls back to body for unknown types", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>Content</main></body></html>`

		fragment := extractor.ExtractFragment(html, "mystery")

		assert.True(t, strings.HasPrefix(fragment, "<body>"))
	})
}
