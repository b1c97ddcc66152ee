package goquery

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mzalewski/fragset"
)

var _ fragset.Augmenter = (*Augmenter)(nil)

var wrapperClasses = []string{
	"container",
	"wrapper",
	"content",
	"main",
	"page-wrapper",
	"site-content",
	"app-root",
}

var injectedComments = []string{
	" Generated content ",
	" Auto-generated ",
	" SEO optimization ",
	" Analytics tracking ",
	" Ad placement ",
}

var injectedStyles = []string{
	".hidden { display: none; }",
	`.clearfix::after { content: ""; display: table; clear: both; }`,
	"body { margin: 0; padding: 0; }",
	"* { box-sizing: border-box; }",
}

var (
	divOpenRE  = regexp.MustCompile(`(<div)`)
	tagSplitRE = regexp.MustCompile(`(>)(<)`)
)

// Augmenter perturbs HTML structure without touching visible content, so a
// variation still maps to the same expected JSON as its base example. All
// randomness flows through a single seeded source, making a run reproducible.
type Augmenter struct {
	rng *rand.Rand
}

// NewAugmenter creates an Augmenter seeded for reproducible output.
func NewAugmenter(seed int64) *Augmenter {
	return &Augmenter{rng: rand.New(rand.NewSource(seed))}
}

// Augment applies a randomized subset of perturbations to the snippet and
// reports which ones ran.
func (a *Augmenter) Augment(snippet string) (string, []string) {
	var applied []string

	if a.rng.Float64() < 0.7 {
		snippet = a.addWrapperDivs(snippet)
		applied = append(applied, "wrapper_divs")
	}
	if a.rng.Float64() < 0.6 {
		snippet = a.addRandomAttributes(snippet)
		applied = append(applied, "random_attrs")
	}
	if a.rng.Float64() < 0.5 {
		snippet = a.injectComments(snippet)
		applied = append(applied, "comments")
	}
	if a.rng.Float64() < 0.4 {
		snippet = a.injectStyles(snippet)
		applied = append(applied, "styles")
	}
	if a.rng.Float64() < 0.5 {
		snippet = a.varyWhitespace(snippet)
		applied = append(applied, "whitespace")
	}

	return snippet, applied
}

// addWrapperDivs nests the body content inside one to three generically named
// wrapper divs, mimicking the layout scaffolding real sites accrete.
func (a *Augmenter) addWrapperDivs(snippet string) string {
	return a.rewrite(snippet, func(doc *goquery.Document) {
		body := doc.Find("body")
		if body.Length() == 0 {
			return
		}
		for i := 0; i < 1+a.rng.Intn(3); i++ {
			inner, err := body.Html()
			if err != nil {
				return
			}
			class := wrapperClasses[a.rng.Intn(len(wrapperClasses))]
			body.SetHtml(fmt.Sprintf(`<div class=%q>%s</div>`, class, inner))
		}
	})
}

// addRandomAttributes sprinkles synthetic classes, data ids and aria
// attributes over a random sample of elements.
func (a *Augmenter) addRandomAttributes(snippet string) string {
	return a.rewrite(snippet, func(doc *goquery.Document) {
		elems := doc.Find("body *")
		n := elems.Length()
		if n == 0 {
			return
		}
		count := 5 + a.rng.Intn(16)
		if count > n {
			count = n
		}
		for _, idx := range a.rng.Perm(n)[:count] {
			el := elems.Eq(idx)
			if a.rng.Float64() < 0.5 {
				el.AddClass(fmt.Sprintf("auto-%d", 1000+a.rng.Intn(9000)))
			}
			if a.rng.Float64() < 0.3 {
				el.SetAttr("data-id", fmt.Sprintf("%d", 10000+a.rng.Intn(90000)))
			}
			if a.rng.Float64() < 0.2 {
				el.SetAttr("aria-hidden", "true")
			}
		}
	})
}

// injectComments inserts innocuous HTML comments before random elements.
func (a *Augmenter) injectComments(snippet string) string {
	return a.rewrite(snippet, func(doc *goquery.Document) {
		elems := doc.Find("body *")
		n := elems.Length()
		if n == 0 {
			return
		}
		for i := 0; i < 2+a.rng.Intn(4); i++ {
			target := elems.Eq(a.rng.Intn(n)).Nodes[0]
			if target.Parent == nil {
				continue
			}
			comment := &html.Node{
				Type: html.CommentNode,
				Data: injectedComments[a.rng.Intn(len(injectedComments))],
			}
			target.Parent.InsertBefore(comment, target)
		}
	})
}

// injectStyles appends a style block of boilerplate CSS rules to the head.
func (a *Augmenter) injectStyles(snippet string) string {
	return a.rewrite(snippet, func(doc *goquery.Document) {
		head := doc.Find("head")
		if head.Length() == 0 {
			return
		}
		k := 1 + a.rng.Intn(3)
		perm := a.rng.Perm(len(injectedStyles))[:k]
		rules := make([]string, 0, k)
		for _, idx := range perm {
			rules = append(rules, injectedStyles[idx])
		}
		inner, err := head.Html()
		if err != nil {
			return
		}
		head.SetHtml(inner + "<style>" + strings.Join(rules, "\n") + "</style>")
	})
}

// varyWhitespace reformats the serialized markup without changing structure.
func (a *Augmenter) varyWhitespace(snippet string) string {
	if a.rng.Float64() < 0.5 {
		snippet = divOpenRE.ReplaceAllString(snippet, "\n$1")
	}
	if a.rng.Float64() < 0.5 {
		snippet = tagSplitRE.ReplaceAllString(snippet, ">\n<")
	}
	return snippet
}

// rewrite parses the snippet, applies the mutation, and serializes back.
// Snippets without an <html> envelope come back without one; the parser
// synthesizes html/head/body wrappers that golden examples never carry.
func (a *Augmenter) rewrite(snippet string, mutate func(*goquery.Document)) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return snippet
	}
	mutate(doc)

	if strings.Contains(strings.ToLower(snippet), "<html") {
		out, err := doc.Html()
		if err != nil {
			return snippet
		}
		return out
	}
	out, err := doc.Find("body").Html()
	if err != nil {
		return snippet
	}
	return out
}
