package mock

import (
	"github.com/mzalewski/fragset"
)

var _ fragset.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of fragset.Classifier.
type Classifier struct {
	ClassifyFn func(frag *fragset.Fragment) fragset.Verdict
}

func (c *Classifier) Classify(frag *fragset.Fragment) fragset.Verdict {
	return c.ClassifyFn(frag)
}

var _ fragset.PatternMatcher = (*PatternMatcher)(nil)

// PatternMatcher is a mock implementation of fragset.PatternMatcher.
type PatternMatcher struct {
	MatchFn func(patterns []string, texts ...string) []string
}

func (m *PatternMatcher) Match(patterns []string, texts ...string) []string {
	return m.MatchFn(patterns, texts...)
}
