package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzalewski/fragset/goquery"
)

func TestAugmenter(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic for a fixed seed", func(t *testing.T) {
		t.Parallel()

		snippet := `<div class="product"><h1>Widget</h1><span>$9.99</span></div>`

		out1, applied1 := goquery.NewAugmenter(42).Augment(snippet)
		out2, applied2 := goquery.NewAugmenter(42).Augment(snippet)

		assert.Equal(t, out1, out2)
		assert.Equal(t, applied1, applied2)
	})

	t.Run("preserves visible content", func(t *testing.T) {
		t.Parallel()

		snippet := `<div class="recipe"><h1>Pancakes</h1><li>2 cups flour</li></div>`

		extractor := goquery.NewTextExtractor()

		// A handful of seeds covers all perturbation combinations.
		for seed := int64(1); seed <= 20; seed++ {
			out, _ := goquery.NewAugmenter(seed).Augment(snippet)
			text := extractor.Text("<html><body>" + out + "</body></html>")
			assert.Contains(t, text, "Pancakes")
			assert.Contains(t, text, "2 cups flour")
		}
	})

	t.Run("reports applied perturbations", func(t *testing.T) {
		t.Parallel()

		known := map[string]bool{
			"wrapper_divs": true,
			"random_attrs": true,
			"comments":     true,
			"styles":       true,
			"whitespace":   true,
		}

		seen := map[string]bool{}
		for seed := int64(0); seed < 50; seed++ {
			_, applied := goquery.NewAugmenter(seed).Augment(`<div><p>x</p></div>`)
			for _, name := range applied {
				require.True(t, known[name], "unknown perturbation %q", name)
				seen[name] = true
			}
		}
		// With 50 seeds every perturbation should have fired at least once.
		assert.Len(t, seen, len(known))
	})

	t.Run("leaves plain snippets unwrapped in html envelope", func(t *testing.T) {
		t.Parallel()

		out, _ := goquery.NewAugmenter(7).Augment(`<div><p>bare</p></div>`)

		assert.NotContains(t, out, "<html")
		assert.NotContains(t, out, "<body")
		assert.Contains(t, out, "bare")
	})
}
