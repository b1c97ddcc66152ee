package fragset

import "context"

// TokenCounter counts tokens in text for a specific model. Used by the
// dataset filter stage to enforce the token budget and by stats reporting.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// MainTextExtractor extracts the main content text of a page, with
// boilerplate (nav, footer, ads) removed. Distinct from TextExtractor,
// which returns all visible text including boilerplate: negative screening
// needs the boilerplate, quality scoring does not.
type MainTextExtractor interface {
	MainText(html string) (string, error)
}
