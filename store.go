package fragset

import "context"

// Artifacts names the three files written for one stored fragment.
type Artifacts struct {
	HTMLPath       string `json:"html_path"`
	MetadataPath   string `json:"metadata_path"`
	AnnotationPath string `json:"annotation_path"`
}

// Metadata is the per-fragment metadata JSON persisted next to the HTML.
// It folds the classification verdict into the fragment's provenance.
type Metadata struct {
	FragmentID string `json:"fragment_id"`

	// FragmentType is set for candidates; ExpectedType for negatives
	// (what the fragment was supposed to be).
	FragmentType string `json:"fragment_type,omitempty"`
	ExpectedType string `json:"expected_type,omitempty"`

	NegativeType string `json:"negative_type,omitempty"`
	SourceURL    string `json:"source_url"`
	Confidence   string `json:"confidence,omitempty"`
	Status       string `json:"status"` // "candidate" or "negative"

	RejectionReason    string `json:"rejection_reason,omitempty"`
	RequiresAnnotation bool   `json:"requires_annotation"`

	Validation ValidationSummary `json:"validation"`
}

// ValidationSummary is the subset of a verdict worth persisting.
type ValidationSummary struct {
	Score           float64  `json:"score"`
	MatchedPatterns []string `json:"matched_patterns"`
	TotalPatterns   int      `json:"total_patterns"`
}

// FragmentStore routes classified fragments to storage. Each fragment is
// exclusively owned by one location (candidates or negatives) at a time;
// reclassification moves ownership by renaming or deleting, never copying.
type FragmentStore interface {
	// Store writes the fragment's three artifacts (HTML, metadata JSON,
	// annotation-template JSON) under the destination chosen from the
	// verdict. Idempotent on identical HTML.
	Store(ctx context.Context, frag *Fragment, verdict Verdict) (*Artifacts, error)
}

// ReclassifyResult records the outcome for one stored negative fragment
// during a reclassification pass.
type ReclassifyResult struct {
	OldFile         string  `json:"old_file"`
	NewFile         string  `json:"new_file,omitempty"`
	Renamed         bool    `json:"renamed"`
	Deleted         bool    `json:"deleted"`
	ExpectedType    string  `json:"expected_type"`
	NegativeType    string  `json:"negative_type"`
	Score           float64 `json:"score"`
	Reason          string  `json:"reason"`
	MatchedPatterns int     `json:"matched_patterns"`
}

// ReclassifyReport aggregates one reclassification pass over the stored
// negatives.
type ReclassifyReport struct {
	Processed int                `json:"processed"`
	Renamed   int                `json:"renamed"`
	Deleted   int                `json:"deleted"`
	Counts    []TypeCount        `json:"counts"`
	Results   []ReclassifyResult `json:"results"`
}

// NegativeReclassifier re-runs classification over stored negative fragments
// after pattern lists change. Fragments that land in a specific negative
// category are renamed in place; fragments that no longer match any category
// are deleted together with their metadata and annotation files.
type NegativeReclassifier interface {
	Reclassify(ctx context.Context) (*ReclassifyReport, error)
}

// FragmentRecord is one row in the fragment index: provenance plus verdict
// for bookkeeping queries, keyed by the content-derived fragment ID.
type FragmentRecord struct {
	FragmentID   string  `json:"fragmentId"`
	RunID        string  `json:"runId"`
	FragmentType string  `json:"fragmentType"`
	SourceURL    string  `json:"sourceUrl"`
	IsValid      bool    `json:"isValid"`
	Score        float64 `json:"score"`
	NegativeType string  `json:"negativeType,omitempty"`
	StoredAt     string  `json:"storedAt"`
}

// TypeCount is a per-type tally used in stats reporting.
type TypeCount struct {
	TypeName string `json:"typeName"`
	Count    int    `json:"count"`
}

// FragmentIndex records collected fragments for stats and re-query. The
// index is bookkeeping only: the files on disk remain the source of truth.
type FragmentIndex interface {
	// RecordFragment inserts or replaces the record for a fragment ID.
	RecordFragment(ctx context.Context, rec *FragmentRecord) error

	// CountByType tallies records grouped by fragment type.
	CountByType(ctx context.Context) ([]TypeCount, error)

	// CountByVerdict tallies valid vs negative records per negative type.
	CountByVerdict(ctx context.Context) (valid int, negatives []TypeCount, err error)

	// DeleteFragment removes the record for a fragment ID.
	// Returns ENOTFOUND if no record exists.
	DeleteFragment(ctx context.Context, fragmentID string) error
}
