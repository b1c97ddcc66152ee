package mock

import (
	"github.com/mzalewski/fragset"
)

var _ fragset.Augmenter = (*Augmenter)(nil)

// Augmenter is a mock implementation of fragset.Augmenter.
type Augmenter struct {
	AugmentFn func(html string) (string, []string)
}

func (a *Augmenter) Augment(html string) (string, []string) {
	return a.AugmentFn(html)
}

var _ fragset.PageAnalyzer = (*PageAnalyzer)(nil)

// PageAnalyzer is a mock implementation of fragset.PageAnalyzer.
type PageAnalyzer struct {
	AnalyzeFn func(html string) fragset.PageAnalysis
}

func (a *PageAnalyzer) Analyze(html string) fragset.PageAnalysis {
	return a.AnalyzeFn(html)
}
