package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mzalewski/fragset"
)

// Ensure Store implements fragset.FragmentStore at compile time.
var _ fragset.FragmentStore = (*Store)(nil)

// Store routes classified fragments to the seeds directory tree. Accepted
// fragments land in candidates/, rejected ones in negatives/ under a prefix
// naming the rejection category. File names are content-derived, so storing
// identical HTML twice overwrites instead of duplicating.
type Store struct {
	candidatesDir string
	negativesDir  string
	registry      fragset.SchemaRegistry
}

// NewStore creates a Store rooted at seedsDir. Fragments are written under
// seedsDir/candidates and seedsDir/negatives.
func NewStore(seedsDir string, registry fragset.SchemaRegistry) *Store {
	return &Store{
		candidatesDir: filepath.Join(seedsDir, "candidates"),
		negativesDir:  filepath.Join(seedsDir, "negatives"),
		registry:      registry,
	}
}

// CandidatesDir returns the directory holding accepted fragments.
func (s *Store) CandidatesDir() string { return s.candidatesDir }

// NegativesDir returns the directory holding rejected fragments.
func (s *Store) NegativesDir() string { return s.negativesDir }

func (s *Store) Store(ctx context.Context, frag *fragset.Fragment, verdict fragset.Verdict) (*fragset.Artifacts, error) {
	if err := frag.Validate(); err != nil {
		return nil, err
	}
	if verdict.IsValid {
		return s.storeCandidate(frag, verdict)
	}
	return s.storeNegative(frag, verdict)
}

func (s *Store) storeCandidate(frag *fragset.Fragment, verdict fragset.Verdict) (*fragset.Artifacts, error) {
	if err := os.MkdirAll(s.candidatesDir, 0755); err != nil {
		return nil, err
	}

	stem := fmt.Sprintf("%s_%s", frag.Type, frag.ID())
	artifacts := s.artifactPaths(s.candidatesDir, stem)

	if err := os.WriteFile(artifacts.HTMLPath, []byte(frag.HTML), 0644); err != nil {
		return nil, err
	}

	metadata := &fragset.Metadata{
		FragmentID:         frag.ID(),
		FragmentType:       frag.Type,
		SourceURL:          frag.SourceURL,
		Confidence:         "high",
		Status:             "candidate",
		RequiresAnnotation: true,
		Validation:         summarize(verdict),
	}
	if err := writeJSON(artifacts.MetadataPath, metadata); err != nil {
		return nil, err
	}

	template := map[string]any{"type": frag.Type}
	if schema, err := s.registry.Get(frag.Type); err == nil && schema.AnnotationTemplate != nil {
		template = cloneTemplate(schema.AnnotationTemplate)
	}
	if err := writeJSON(artifacts.AnnotationPath, template); err != nil {
		return nil, err
	}

	return artifacts, nil
}

func (s *Store) storeNegative(frag *fragset.Fragment, verdict fragset.Verdict) (*fragset.Artifacts, error) {
	if err := os.MkdirAll(s.negativesDir, 0755); err != nil {
		return nil, err
	}

	prefix := NegativePrefix(verdict.NegativeType, frag.Type)
	stem := fmt.Sprintf("%s_%s", prefix, frag.ID())
	artifacts := s.artifactPaths(s.negativesDir, stem)

	if err := os.WriteFile(artifacts.HTMLPath, []byte(frag.HTML), 0644); err != nil {
		return nil, err
	}

	metadata := &fragset.Metadata{
		FragmentID:         frag.ID(),
		ExpectedType:       frag.Type,
		NegativeType:       verdict.NegativeType,
		SourceURL:          frag.SourceURL,
		Status:             "negative",
		RejectionReason:    verdict.Reason,
		RequiresAnnotation: true,
		Validation:         summarize(verdict),
	}
	if err := writeJSON(artifacts.MetadataPath, metadata); err != nil {
		return nil, err
	}

	if err := writeJSON(artifacts.AnnotationPath, s.negativeTemplate(frag, verdict)); err != nil {
		return nil, err
	}

	return artifacts, nil
}

// negativeTemplate builds the annotation starting point for a rejected
// fragment. Specific negative categories reuse their schema's template plus
// the patterns that fired; low-score rejections get a free-form template
// asking the annotator to point at the disqualifying markup.
func (s *Store) negativeTemplate(frag *fragset.Fragment, verdict fragset.Verdict) map[string]any {
	if verdict.NegativeType != "" {
		template := map[string]any{"type": verdict.NegativeType}
		if schema, err := s.registry.Get(verdict.NegativeType); err == nil && schema.AnnotationTemplate != nil {
			template = cloneTemplate(schema.AnnotationTemplate)
		}
		template["matched_negative_patterns"] = patternsOrEmpty(verdict.MatchedPatterns)
		return template
	}

	return map[string]any{
		"type":             "negative",
		"expected_type":    frag.Type,
		"rejection_reason": verdict.Reason,
		"matched_patterns": patternsOrEmpty(verdict.MatchedPatterns),
		"total_patterns":   verdict.TotalPatterns,
		"negative_indicator_fragment": fmt.Sprintf(
			"TODO: Extract the HTML fragment that shows why this is negative (only %.1f%% of patterns matched)",
			verdict.Score*100),
		"notes": "TODO: Any additional notes about why this failed validation",
	}
}

func (s *Store) artifactPaths(dir, stem string) *fragset.Artifacts {
	return &fragset.Artifacts{
		HTMLPath:       filepath.Join(dir, stem+".html"),
		MetadataPath:   filepath.Join(dir, stem+".json"),
		AnnotationPath: filepath.Join(dir, stem+"_annotation.json"),
	}
}

// NegativePrefix maps a negative category to its file-name prefix. Fragments
// rejected without a specific category get a per-type lowscore prefix.
func NegativePrefix(negativeType, expectedType string) string {
	switch negativeType {
	case fragset.TypeErrorPage:
		return "errorpage"
	case fragset.TypeAuthRequired:
		return "authrequired"
	case fragset.TypeEmptyShell:
		return "emptyspashell"
	default:
		return expectedType + "_lowscore"
	}
}

func summarize(verdict fragset.Verdict) fragset.ValidationSummary {
	return fragset.ValidationSummary{
		Score:           verdict.Score,
		MatchedPatterns: patternsOrEmpty(verdict.MatchedPatterns),
		TotalPatterns:   verdict.TotalPatterns,
	}
}

func patternsOrEmpty(patterns []string) []string {
	if patterns == nil {
		return []string{}
	}
	return patterns
}

func cloneTemplate(template map[string]any) map[string]any {
	clone := make(map[string]any, len(template))
	for k, v := range template {
		clone[k] = v
	}
	return clone
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
