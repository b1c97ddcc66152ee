package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mzalewski/fragset"
)

// Ensure Analyzer implements fragset.PageAnalyzer at compile time.
var _ fragset.PageAnalyzer = (*Analyzer)(nil)

var (
	spaMarkerRE = regexp.MustCompile(`(?i)react|__NEXT_DATA__|_reactRoot|data-reactroot|vue\.js|__NUXT__|ng-app|angular\.js|svelte`)
	loadingRE   = regexp.MustCompile(`(?i)loading|please wait|enabling javascript|javascript is required`)

	anomalyREs = []*regexp.Regexp{
		regexp.MustCompile(`404|not found`),
		regexp.MustCompile(`403|forbidden`),
		regexp.MustCompile(`500|internal server error`),
		regexp.MustCompile(`502|bad gateway`),
		regexp.MustCompile(`503|service unavailable`),
		regexp.MustCompile(`error occurred`),
		regexp.MustCompile(`redirect|redirecting|you will be redirected`),
		regexp.MustCompile(`captcha|recaptcha|verify you are human|security check`),
	}
	loginRE  = regexp.MustCompile(`login|sign in|authentication required|please log in`)
	robotsRE = regexp.MustCompile(`robot|bot|crawler|automated access|rate limit`)
)

// Analyzer implements page quality assessment over parsed HTML. It flags
// client-rendered shells and anomalous pages, and scores content quality for
// ranking fragment sources.
type Analyzer struct {
	texts *TextExtractor
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{texts: NewTextExtractor()}
}

func (a *Analyzer) Analyze(rawHTML string) fragset.PageAnalysis {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return fragset.PageAnalysis{HasAnomalies: true}
	}
	text := a.texts.Text(rawHTML)

	return fragset.PageAnalysis{
		IsDynamic:    isDynamic(rawHTML, doc, text),
		HasAnomalies: hasAnomalies(rawHTML, doc, text),
		QualityScore: scoreQuality(doc, text),
	}
}

func isDynamic(rawHTML string, doc *goquery.Document, text string) bool {
	if spaMarkerRE.MatchString(rawHTML) {
		return true
	}

	// Framework mount point with almost no server-rendered text.
	if doc.Find("div#root, div#app, div#__next").Length() > 0 && len(text) < 500 {
		return true
	}

	if len(rawHTML) > 0 {
		textRatio := float64(len(text)) / float64(len(rawHTML))
		if doc.Find("script").Length() > 10 && textRatio < 0.1 {
			return true
		}
	}

	return loadingRE.MatchString(head(text, 1000))
}

func hasAnomalies(rawHTML string, doc *goquery.Document, text string) bool {
	lower := strings.ToLower(text)

	if len(lower) < 100 {
		return true
	}
	for _, re := range anomalyREs {
		if re.MatchString(lower) {
			return true
		}
	}
	if loginRE.MatchString(head(lower, 500)) {
		return true
	}
	if robotsRE.MatchString(head(lower, 1000)) {
		return true
	}

	// The parser synthesizes html/body nodes, so check the source bytes.
	lowerHTML := strings.ToLower(rawHTML)
	if !strings.Contains(lowerHTML, "<html") || !strings.Contains(lowerHTML, "<body") {
		return true
	}

	return false
}

func scoreQuality(doc *goquery.Document, text string) float64 {
	score := 0.0

	words := strings.Fields(text)
	wordCount := len(words)
	switch {
	case wordCount >= 500 && wordCount <= 5000:
		score += 30
	case wordCount >= 200 && wordCount < 500:
		score += 20
	case wordCount >= 100 && wordCount < 200:
		score += 10
	}

	if wordCount > 0 {
		unique := map[string]bool{}
		for _, w := range words {
			if len(w) > 3 {
				unique[strings.ToLower(w)] = true
			}
		}
		richness := float64(len(unique)) / float64(wordCount)
		score += min(richness*100, 20)
	}

	semanticCount := doc.Find("article, section, nav, header, footer, main, aside").Length()
	score += min(float64(semanticCount)*2, 15)

	headerCount := doc.Find("h1, h2, h3, h4, h5, h6").Length()
	score += min(float64(headerCount)*1.5, 10)

	score += min(float64(doc.Find("p").Length())*0.5, 10)

	linkCount := doc.Find("a[href]").Length()
	switch {
	case linkCount >= 5 && linkCount <= 50:
		score += 10
	case (linkCount >= 2 && linkCount < 5) || (linkCount > 50 && linkCount <= 100):
		score += 5
	}

	if doc.Find(`meta[name="description"]`).Length() > 0 {
		score += 2.5
	}
	if doc.Find(`meta[name="viewport"]`).Length() > 0 {
		score += 2.5
	}

	return min(score, 100)
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
