package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/classify"
	"github.com/mzalewski/fragset/goquery"
	"github.com/mzalewski/fragset/mock"
)

func newClassifier(opts ...classify.Option) *classify.Classifier {
	return classify.NewClassifier(fragset.NewRegistry(), goquery.NewTextExtractor(), opts...)
}

const recipeHTML = `<article>
<h1>Classic Vanilla Cake</h1>
<ul>
<li>2 cups flour</li>
<li>1 tsp salt</li>
<li>3 cups sugar</li>
</ul>
<ol>
<li>Preheat oven to 350°F.</li>
<li>Mix the dry ingredients.</li>
<li>Bake for 30 minutes.</li>
</ol>
<p>Serves 8</p>
</article>`

const authWallHTML = `<html><body>
<h2>Members only</h2>
<p>Please sign in to continue reading this article.</p>
<form><input type="password" name="pw"></form>
<a href="/reset">Forgot your password?</a>
</body></html>`

func TestClassify_StatusShortCircuit(t *testing.T) {
	t.Parallel()

	t.Run("status 404 forces error_page even for valid content", func(t *testing.T) {
		t.Parallel()

		verdict := newClassifier().Classify(&fragset.Fragment{
			HTML:       recipeHTML,
			Type:       "recipe",
			StatusCode: 404,
		})

		assert.False(t, verdict.IsValid)
		assert.Equal(t, fragset.TypeErrorPage, verdict.NegativeType)
		assert.Equal(t, 0.0, verdict.Score)
		assert.Equal(t, []string{"http_status:404"}, verdict.MatchedPatterns)
	})

	t.Run("status below 400 does not short-circuit", func(t *testing.T) {
		t.Parallel()

		verdict := newClassifier().Classify(&fragset.Fragment{
			HTML:       recipeHTML,
			Type:       "recipe",
			StatusCode: 200,
		})

		assert.True(t, verdict.IsValid)
		assert.Empty(t, verdict.NegativeType)
	})
}

func TestClassify_NegativeScreening(t *testing.T) {
	t.Parallel()

	t.Run("auth wall at threshold is rejected", func(t *testing.T) {
		t.Parallel()

		verdict := newClassifier().Classify(&fragset.Fragment{HTML: authWallHTML, Type: "product"})

		assert.False(t, verdict.IsValid)
		assert.Equal(t, fragset.TypeAuthRequired, verdict.NegativeType)
		assert.Equal(t, 0.0, verdict.Score)
		assert.Contains(t, verdict.Reason, "auth_required")
		assert.GreaterOrEqual(t, len(verdict.MatchedPatterns), 3)
	})

	t.Run("below-threshold matches never short-circuit", func(t *testing.T) {
		t.Parallel()

		// Two auth patterns only; screening must fall through to scoring.
		html := `<div><a>Forgot your password?</a><label>Remember me</label></div>`

		verdict := newClassifier().Classify(&fragset.Fragment{HTML: html, Type: "product"})

		assert.Empty(t, verdict.NegativeType)
		assert.False(t, verdict.IsValid)
		assert.Contains(t, verdict.Reason, "patterns matched")
	})

	t.Run("priority order puts auth_required before error_page", func(t *testing.T) {
		t.Parallel()

		// Enough patterns for both categories; the higher-priority one wins.
		html := `<html><body>
<p>404 - page not found. Internal server error. Something went wrong.</p>
<p>Please sign in to continue.</p>
<form><input type="password"></form>
<a>Forgot your password?</a>
<label>Remember me</label>
</body></html>`

		verdict := newClassifier().Classify(&fragset.Fragment{HTML: html, Type: "product"})

		assert.Equal(t, fragset.TypeAuthRequired, verdict.NegativeType)
	})

	t.Run("raw HTML attributes count as evidence", func(t *testing.T) {
		t.Parallel()

		// SPA markers that live in markup, not visible text.
		html := `<html><body>
<div id="root"></div>
<script>window.__NEXT_DATA__ = {}</script>
<noscript>You need to enable JavaScript to run this app.</noscript>
</body></html>`

		verdict := newClassifier().Classify(&fragset.Fragment{HTML: html, Type: "product"})

		assert.Equal(t, fragset.TypeEmptyShell, verdict.NegativeType)
	})

	t.Run("stricter threshold suppresses borderline rejections", func(t *testing.T) {
		t.Parallel()

		classifier := newClassifier(classify.WithNegativeThreshold(5))

		verdict := classifier.Classify(&fragset.Fragment{HTML: authWallHTML, Type: "product"})

		assert.Empty(t, verdict.NegativeType)
		assert.Equal(t, 5, classifier.NegativeThreshold())
	})

	t.Run("reported matches are capped at five", func(t *testing.T) {
		t.Parallel()

		// A matcher that reports seven hits for whatever category asks first.
		matcher := &mock.PatternMatcher{
			MatchFn: func(patterns []string, texts ...string) []string {
				if len(patterns) < 7 {
					return nil
				}
				return patterns[:7]
			},
		}
		classifier := newClassifier(classify.WithMatcher(matcher))

		verdict := classifier.Classify(&fragset.Fragment{HTML: "<div>x</div>", Type: "product"})

		require.NotEmpty(t, verdict.NegativeType)
		assert.Len(t, verdict.MatchedPatterns, fragset.MaxReportedPatterns)
		assert.Contains(t, verdict.Reason, "7/")
	})
}

func TestClassify_PositiveScoring(t *testing.T) {
	t.Parallel()

	t.Run("recipe fragment is accepted with pattern evidence", func(t *testing.T) {
		t.Parallel()

		verdict := newClassifier().Classify(&fragset.Fragment{HTML: recipeHTML, Type: "recipe"})

		assert.True(t, verdict.IsValid)
		assert.GreaterOrEqual(t, verdict.Score, classify.ValidThreshold)
		assert.Equal(t, 6, verdict.TotalPatterns)

		joined := ""
		for _, p := range verdict.MatchedPatterns {
			joined += p + "\n"
		}
		assert.Contains(t, joined, "cup", "measurement pattern should match")
		assert.Contains(t, joined, "preheat", "cooking verb pattern should match")
	})

	t.Run("sparse product fragment is rejected with a reason", func(t *testing.T) {
		t.Parallel()

		verdict := newClassifier().Classify(&fragset.Fragment{
			HTML: `<div><span>$9.99</span></div>`,
			Type: "product",
		})

		assert.False(t, verdict.IsValid)
		assert.Equal(t, 0.2, verdict.Score)
		assert.Equal(t, "Only 1/5 patterns matched (20.0%) - need 30%+", verdict.Reason)
	})

	t.Run("rich product fragment is accepted", func(t *testing.T) {
		t.Parallel()

		verdict := newClassifier().Classify(&fragset.Fragment{
			HTML: `<main><span>$49.99</span> <span>4.5 star</span> <span>★★★★</span></main>`,
			Type: "product",
		})

		assert.True(t, verdict.IsValid)
		assert.Equal(t, 0.6, verdict.Score)
		assert.Equal(t, "Matched 3/5 patterns (60.0%)", verdict.Reason)
	})

	t.Run("score is monotonic in matching evidence", func(t *testing.T) {
		t.Parallel()

		classifier := newClassifier()
		base := `<div><li>2 cups flour</li><li>Preheat oven</li></div>`
		richer := `<div><li>2 cups flour</li><li>Preheat oven</li><p>Serves 4</p></div>`

		baseScore := classifier.Classify(&fragset.Fragment{HTML: base, Type: "recipe"}).Score
		richerScore := classifier.Classify(&fragset.Fragment{HTML: richer, Type: "recipe"}).Score

		assert.GreaterOrEqual(t, richerScore, baseScore)
	})

	t.Run("score always stays within the unit interval", func(t *testing.T) {
		t.Parallel()

		classifier := newClassifier()
		fragments := []string{
			"",
			"<div></div>",
			recipeHTML,
			`<main>$1 $2 $3 rating: 4.8 5 star ★★ 10 USD</main>`,
		}

		for _, html := range fragments {
			for _, typ := range []string{"recipe", "product", "event", "unknown"} {
				verdict := classifier.Classify(&fragset.Fragment{HTML: html, Type: typ})
				assert.GreaterOrEqual(t, verdict.Score, 0.0)
				assert.LessOrEqual(t, verdict.Score, 1.0)
				if verdict.NegativeType == "" {
					assert.Equal(t, verdict.Score >= classify.ValidThreshold, verdict.IsValid)
				}
			}
		}
	})
}

func TestClassify_PermissiveDefault(t *testing.T) {
	t.Parallel()

	t.Run("unknown type weak-accepts instead of failing", func(t *testing.T) {
		t.Parallel()

		verdict := newClassifier().Classify(&fragset.Fragment{
			HTML: "<div>whatever</div>",
			Type: "gallery",
		})

		assert.True(t, verdict.IsValid)
		assert.Equal(t, classify.PermissiveScore, verdict.Score)
		assert.Contains(t, verdict.Reason, "Unknown fragment type: gallery")
	})

	t.Run("pattern-less schema weak-accepts", func(t *testing.T) {
		t.Parallel()

		verdict := newClassifier().Classify(&fragset.Fragment{
			HTML: "<div>Concert on Friday</div>",
			Type: "event",
		})

		assert.True(t, verdict.IsValid)
		assert.Equal(t, classify.PermissiveScore, verdict.Score)
		assert.Equal(t, "No validation patterns defined", verdict.Reason)
	})

	t.Run("negative screening still applies to unknown types", func(t *testing.T) {
		t.Parallel()

		verdict := newClassifier().Classify(&fragset.Fragment{HTML: authWallHTML, Type: "gallery"})

		assert.False(t, verdict.IsValid)
		assert.Equal(t, fragset.TypeAuthRequired, verdict.NegativeType)
	})
}
