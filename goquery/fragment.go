package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mzalewski/fragset"
)

// Ensure FragmentExtractor implements fragset.FragmentExtractor at compile time.
var _ fragset.FragmentExtractor = (*FragmentExtractor)(nil)

// probe is one (tag, class-substring) heuristic. An empty ClassContains
// matches the bare tag.
type probe struct {
	Tag           string
	ClassContains string
}

// fragmentProbes lists, per fragment type, the ordered structural heuristics
// tried when locating the containing subtree. First match wins.
var fragmentProbes = map[string][]probe{
	"product": {
		{Tag: "main"},
		{Tag: "article"},
		{Tag: "div", ClassContains: "product"},
	},
	"recipe": {
		{Tag: "article"},
		{Tag: "main"},
		{Tag: "div", ClassContains: "recipe"},
	},
	"event": {
		{Tag: "article"},
		{Tag: "main"},
		{Tag: "div", ClassContains: "event"},
		{Tag: "section", ClassContains: "event"},
	},
	"pricing_table": {
		{Tag: "section", ClassContains: "pricing"},
		{Tag: "div", ClassContains: "pricing"},
		{Tag: "main"},
	},
	"job_posting": {
		{Tag: "article"},
		{Tag: "main"},
		{Tag: "div", ClassContains: "job"},
		{Tag: "div", ClassContains: "posting"},
	},
	"person": {
		{Tag: "article"},
		{Tag: "main"},
		{Tag: "div", ClassContains: "profile"},
		{Tag: "div", ClassContains: "person"},
		{Tag: "section", ClassContains: "bio"},
	},
}

// FragmentExtractor locates the most plausible containing subtree for a
// schema type. Best-effort heuristic: the classifier's scoring downstream is
// the actual correctness gate.
type FragmentExtractor struct{}

// NewFragmentExtractor creates a new FragmentExtractor.
func NewFragmentExtractor() *FragmentExtractor {
	return &FragmentExtractor{}
}

// ExtractFragment strips noise tags document-wide, then tries the type's
// probes in order and returns the first match's outer HTML. Falls back to
// <body>, and to the whole document when even <body> is absent.
func (e *FragmentExtractor) ExtractFragment(pageHTML string, fragmentType string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return pageHTML
	}

	// Remove scripts, styles, and other noise before subtree selection so
	// the returned fragment carries content, not page machinery.
	doc.Find("script, style, noscript, meta, link").Remove()

	for _, p := range fragmentProbes[fragmentType] {
		if html, ok := outerHTMLFirst(findProbe(doc, p)); ok {
			return html
		}
	}

	if html, ok := outerHTMLFirst(doc.Find("body")); ok {
		return html
	}
	return pageHTML
}

// findProbe selects elements matching the probe's tag, filtered by class
// substring when one is specified. Class matching is case-insensitive.
func findProbe(doc *goquery.Document, p probe) *goquery.Selection {
	sel := doc.Find(p.Tag)
	if p.ClassContains == "" {
		return sel
	}
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && strings.Contains(strings.ToLower(class), p.ClassContains)
	})
}

// outerHTMLFirst renders the first element of a selection as outer HTML.
func outerHTMLFirst(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	html, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return "", false
	}
	return html, true
}
