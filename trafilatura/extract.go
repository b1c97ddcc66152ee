// Package trafilatura extracts main page content with boilerplate removed,
// feeding the quality filter's prose metrics.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"

	"github.com/mzalewski/fragset"
)

// Ensure Extractor implements fragset.MainTextExtractor at compile time.
var _ fragset.MainTextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main text out of a page. Nav,
// footer, and ad boilerplate are dropped, which is what distinguishes this
// from the plain visible-text extractor used by negative screening.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// MainText returns the page's main content as plain text.
func (e *Extractor) MainText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", fragset.Errorf(fragset.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result.ContentText), nil
}
