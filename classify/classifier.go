package classify

import (
	"fmt"
	"net/http"

	"github.com/mzalewski/fragset"
)

// DefaultNegativeThreshold is the number of negative patterns that must
// match before Phase 1 classifies a fragment into a negative category.
//
// The source history of this pipeline used both 3 and 5. We default to 3:
// negative fragments are cheap to discard during human review, while a
// missed auth wall or SPA shell pollutes the candidate pool and wastes an
// annotation pass. The stricter value 5 trades fewer false negatives for
// more junk candidates; it remains selectable via WithNegativeThreshold.
const DefaultNegativeThreshold = 3

// ValidThreshold is the minimum positive score for a valid verdict. The bar
// is deliberately low: patterns are necessary-evidence heuristics, so the
// pipeline over-collects and lets human annotation filter later.
const ValidThreshold = 0.30

// PermissiveScore is the score assigned on the permissive default path,
// taken when the requested type is unknown or defines no patterns.
const PermissiveScore = 0.5

// Compile-time interface verification.
var _ fragset.Classifier = (*Classifier)(nil)

// Classifier is the two-phase fragment classification core. It is a pure
// function of its inputs apart from the matcher's pattern cache, and is safe
// for concurrent use.
type Classifier struct {
	registry          fragset.SchemaRegistry
	texts             fragset.TextExtractor
	matcher           fragset.PatternMatcher
	negativeThreshold int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithNegativeThreshold overrides DefaultNegativeThreshold.
func WithNegativeThreshold(n int) Option {
	return func(c *Classifier) {
		c.negativeThreshold = n
	}
}

// WithMatcher overrides the default pattern matcher.
func WithMatcher(m fragset.PatternMatcher) Option {
	return func(c *Classifier) {
		c.matcher = m
	}
}

// NewClassifier creates a Classifier over the given registry and text
// extractor.
func NewClassifier(registry fragset.SchemaRegistry, texts fragset.TextExtractor, opts ...Option) *Classifier {
	c := &Classifier{
		registry:          registry,
		texts:             texts,
		matcher:           NewMatcher(),
		negativeThreshold: DefaultNegativeThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NegativeThreshold returns the configured Phase 1 threshold.
func (c *Classifier) NegativeThreshold() int {
	return c.negativeThreshold
}

// Classify runs the two-phase decision procedure for a fragment.
//
// A recorded HTTP status >= 400 bypasses both phases: the status is ground
// truth, stronger than any regex heuristic. Phase 1 screens the negative
// categories in fixed priority order and short-circuits on the first
// category reaching threshold; lower-priority categories and the positive
// schema are not evaluated. Phase 2 scores the fragment against the
// requested positive schema, degrading to a permissive default verdict for
// unknown types and pattern-less schemas.
func (c *Classifier) Classify(frag *fragset.Fragment) fragset.Verdict {
	if frag.StatusCode >= http.StatusBadRequest {
		return c.statusVerdict(frag.StatusCode)
	}

	text := c.texts.Text(frag.HTML)

	if verdict, ok := c.screenNegatives(frag.HTML, text); ok {
		return verdict
	}

	return c.scorePositive(frag.Type, text)
}

// statusVerdict is the auxiliary short-circuit path: the fetch itself
// reported an error, so the fragment is an error page regardless of content.
// The synthetic matched-pattern entry records the status for the metadata.
func (c *Classifier) statusVerdict(status int) fragset.Verdict {
	return fragset.Verdict{
		IsValid:         false,
		Score:           0.0,
		MatchedPatterns: []string{fmt.Sprintf("http_status:%d", status)},
		TotalPatterns:   0,
		Reason:          fmt.Sprintf("HTTP status %d: fetch reported an error page", status),
		NegativeType:    fragset.TypeErrorPage,
	}
}

// screenNegatives is Phase 1. It evaluates each negative category's pattern
// set against both text views and short-circuits on the first category whose
// match count reaches the threshold. Ordering is most-common-first so that
// incidental co-occurrence lands the fragment in the likelier category.
func (c *Classifier) screenNegatives(rawHTML, text string) (fragset.Verdict, bool) {
	for _, negType := range c.registry.NegativeTypes() {
		patterns, err := c.registry.ValidationPatterns(negType)
		if err != nil || len(patterns) == 0 {
			continue
		}

		matched := c.matcher.Match(patterns, rawHTML, text)
		if len(matched) < c.negativeThreshold {
			continue
		}

		return fragset.Verdict{
			IsValid:         false,
			Score:           0.0,
			MatchedPatterns: capPatterns(matched),
			TotalPatterns:   len(patterns),
			Reason: fmt.Sprintf("Detected %s: %d/%d negative patterns matched",
				negType, len(matched), len(patterns)),
			NegativeType: negType,
		}, true
	}
	return fragset.Verdict{}, false
}

// scorePositive is Phase 2: score = matched/total with the validity bar at
// ValidThreshold. Unknown types and pattern-less schemas take the explicit
// permissive path: the pipeline prefers over-collection to silent data loss,
// so unclassifiable-but-requested types are weak-accepted for human review.
func (c *Classifier) scorePositive(fragmentType, text string) fragset.Verdict {
	patterns, err := c.registry.ValidationPatterns(fragmentType)
	if err != nil {
		return permissiveVerdict(fmt.Sprintf("Unknown fragment type: %s", fragmentType))
	}
	if len(patterns) == 0 {
		return permissiveVerdict("No validation patterns defined")
	}

	matched := c.matcher.Match(patterns, text)
	score := float64(len(matched)) / float64(len(patterns))
	valid := score >= ValidThreshold

	var reason string
	if valid {
		reason = fmt.Sprintf("Matched %d/%d patterns (%.1f%%)",
			len(matched), len(patterns), score*100)
	} else {
		reason = fmt.Sprintf("Only %d/%d patterns matched (%.1f%%) - need %.0f%%+",
			len(matched), len(patterns), score*100, ValidThreshold*100)
	}

	return fragset.Verdict{
		IsValid:         valid,
		Score:           score,
		MatchedPatterns: capPatterns(matched),
		TotalPatterns:   len(patterns),
		Reason:          reason,
	}
}

// permissiveVerdict is the named weak-accept path for unclassifiable types.
func permissiveVerdict(reason string) fragset.Verdict {
	return fragset.Verdict{
		IsValid:         true,
		Score:           PermissiveScore,
		MatchedPatterns: nil,
		TotalPatterns:   0,
		Reason:          reason,
	}
}

// capPatterns limits the reported match list without touching the count
// that fed the score.
func capPatterns(matched []string) []string {
	if len(matched) > fragset.MaxReportedPatterns {
		return matched[:fragset.MaxReportedPatterns]
	}
	return matched
}
