package fragset

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// Fragment is a candidate HTML subtree plus provenance. Fragments are never
// mutated after creation; human annotation edits only the annotation JSON,
// not the HTML or metadata.
type Fragment struct {
	// HTML is the fragment's outer HTML.
	HTML string `json:"html"`

	// Type is the schema type the fragment was collected for.
	Type string `json:"fragment_type"`

	// SourceURL is the page the fragment was extracted from.
	SourceURL string `json:"source_url"`

	// StatusCode is the HTTP status reported by the fetch, or 0 when the
	// fetch did not record one. A status >= 400 is ground truth for the
	// error_page category, stronger than any regex heuristic.
	StatusCode int `json:"status_code,omitempty"`
}

// ID returns the fragment's content-derived identifier: a deterministic
// function of the HTML bytes, stable across re-runs. Identical HTML always
// yields the same ID, so re-collecting a fragment overwrites rather than
// duplicates.
func (f *Fragment) ID() string {
	return FragmentID(f.HTML)
}

// FragmentID hashes HTML bytes into an 8-character hex identifier.
func FragmentID(html string) string {
	h := xxhash.Sum64String(html)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], h)
	return hex.EncodeToString(b[:4])
}

// Validate returns an error if the fragment contains invalid fields.
func (f *Fragment) Validate() error {
	if f.HTML == "" {
		return Errorf(EINVALID, "fragment HTML required")
	}
	if f.Type == "" {
		return Errorf(EINVALID, "fragment type required")
	}
	return nil
}

// MaxReportedPatterns caps the matched-pattern list carried on a verdict.
// The full match count still feeds the score; the cap only limits reporting.
const MaxReportedPatterns = 5

// Verdict is the classifier's output for one fragment. It is ephemeral:
// never persisted on its own, only folded into fragment metadata.
type Verdict struct {
	// IsValid reports whether the fragment is a genuine positive example of
	// the requested schema.
	IsValid bool `json:"is_valid"`

	// Score in [0.0, 1.0]: the fraction of the positive schema's patterns
	// that matched. Always 0.0 when NegativeType is set.
	Score float64 `json:"score"`

	// MatchedPatterns is an ordered subset of the relevant pattern list,
	// capped at MaxReportedPatterns.
	MatchedPatterns []string `json:"matched_patterns"`

	// TotalPatterns is the size of the pattern list that was evaluated.
	TotalPatterns int `json:"total_patterns"`

	// Reason is a human-readable justification.
	Reason string `json:"reason"`

	// NegativeType names the detected negative category, or "" when none
	// reached threshold. Non-empty implies IsValid=false and Score=0.
	NegativeType string `json:"negative_type,omitempty"`
}

// Classifier decides whether a fragment is a genuine positive example of a
// schema, a specific negative pattern, or neither.
type Classifier interface {
	// Classify runs negative screening then positive scoring for the
	// fragment's type. It is a pure function of its inputs: it never errors
	// on malformed HTML, and an unknown fragment type degrades to a
	// permissive default verdict rather than failing.
	Classify(frag *Fragment) Verdict
}

// PatternMatcher evaluates regex patterns against one or more text views of
// a fragment (typically raw HTML and extracted visible text).
type PatternMatcher interface {
	// Match returns the patterns for which a case-insensitive search
	// succeeds against any of the texts, in input pattern order. Malformed
	// patterns are skipped rather than failing the batch.
	Match(patterns []string, texts ...string) []string
}

// TextExtractor produces the visible-text view of an HTML fragment.
type TextExtractor interface {
	// Text returns the fragment's visible text. Malformed HTML degrades to
	// partial or empty text, never an error.
	Text(html string) string
}

// FragmentExtractor locates the most plausible containing subtree for a
// schema type within full-page HTML.
type FragmentExtractor interface {
	// ExtractFragment returns the outer HTML of the best structural match
	// for the type, falling back to <body> and finally the whole document.
	// Best-effort: the classifier's scoring is the actual correctness gate.
	ExtractFragment(pageHTML string, fragmentType string) string
}
