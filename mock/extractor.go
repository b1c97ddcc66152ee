package mock

import (
	"github.com/mzalewski/fragset"
)

var _ fragset.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of fragset.TextExtractor.
type TextExtractor struct {
	TextFn func(html string) string
}

func (e *TextExtractor) Text(html string) string {
	return e.TextFn(html)
}

var _ fragset.FragmentExtractor = (*FragmentExtractor)(nil)

// FragmentExtractor is a mock implementation of fragset.FragmentExtractor.
type FragmentExtractor struct {
	ExtractFragmentFn func(pageHTML string, fragmentType string) string
}

func (e *FragmentExtractor) ExtractFragment(pageHTML string, fragmentType string) string {
	return e.ExtractFragmentFn(pageHTML, fragmentType)
}

var _ fragset.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of fragset.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) []string
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) []string {
	return e.ExtractLinksFn(html, baseURL)
}

var _ fragset.MainTextExtractor = (*MainTextExtractor)(nil)

// MainTextExtractor is a mock implementation of fragset.MainTextExtractor.
type MainTextExtractor struct {
	MainTextFn func(html string) (string, error)
}

func (e *MainTextExtractor) MainText(html string) (string, error) {
	return e.MainTextFn(html)
}
