// Package goquery provides HTML-processing implementations backed by the
// goquery DOM library: visible-text extraction, fragment subtree location,
// and the structural perturbations used for dataset augmentation.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mzalewski/fragset"
)

// Ensure TextExtractor implements fragset.TextExtractor at compile time.
var _ fragset.TextExtractor = (*TextExtractor)(nil)

// TextExtractor produces the visible-text view of an HTML fragment.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Text returns the fragment's visible text, one line per text node.
// Script, style, and noscript content is excluded. Malformed HTML degrades
// to whatever text the parser recovered; the worst case is an empty string,
// never an error.
func (e *TextExtractor) Text(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				lines = append(lines, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}

	return strings.Join(lines, "\n")
}
