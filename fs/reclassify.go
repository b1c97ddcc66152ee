package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mzalewski/fragset"
)

// Ensure Reclassifier implements fragset.NegativeReclassifier at compile time.
var _ fragset.NegativeReclassifier = (*Reclassifier)(nil)

// knownExpectedTypes are the positive types a negative file name can encode.
var knownExpectedTypes = map[string]bool{
	"product":       true,
	"recipe":        true,
	"event":         true,
	"pricing_table": true,
	"job_posting":   true,
	"person":        true,
}

// Reclassifier re-runs classification over the negatives directory. Useful
// after pattern lists change: previously collected negatives get renamed to
// their current category, and fragments no category claims anymore are
// deleted rather than left under a stale label.
type Reclassifier struct {
	negativesDir string
	resultsPath  string
	classifier   fragset.Classifier
}

// NewReclassifier creates a Reclassifier over seedsDir/negatives. A results
// JSON with per-file accounting is written to seedsDir on each pass.
func NewReclassifier(seedsDir string, classifier fragset.Classifier) *Reclassifier {
	return &Reclassifier{
		negativesDir: filepath.Join(seedsDir, "negatives"),
		resultsPath:  filepath.Join(seedsDir, "negative_reclassification_results.json"),
		classifier:   classifier,
	}
}

func (r *Reclassifier) Reclassify(ctx context.Context) (*fragset.ReclassifyReport, error) {
	files, err := filepath.Glob(filepath.Join(r.negativesDir, "*.html"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	report := &fragset.ReclassifyReport{}
	counts := map[string]int{}

	for _, htmlPath := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stem := strings.TrimSuffix(filepath.Base(htmlPath), ".html")
		expectedType, fragmentID := parseNegativeStem(stem)

		raw, err := os.ReadFile(htmlPath)
		if err != nil {
			return nil, err
		}

		verdict := r.classifier.Classify(&fragset.Fragment{
			HTML: string(raw),
			Type: expectedType,
		})

		report.Processed++
		result := fragset.ReclassifyResult{
			OldFile:         filepath.Base(htmlPath),
			ExpectedType:    expectedType,
			NegativeType:    verdict.NegativeType,
			Score:           verdict.Score,
			Reason:          verdict.Reason,
			MatchedPatterns: len(verdict.MatchedPatterns),
		}

		if verdict.NegativeType == "" {
			// No category claims this fragment anymore.
			if err := r.deleteArtifacts(stem, htmlPath); err != nil {
				return nil, err
			}
			result.Deleted = true
			result.NegativeType = "low_score"
			counts["low_score"]++
			report.Deleted++
		} else {
			newStem := NegativePrefix(verdict.NegativeType, expectedType) + "_" + fragmentID
			result.NewFile = newStem + ".html"
			counts[verdict.NegativeType]++
			if newStem != stem {
				if err := r.renameArtifacts(stem, newStem, verdict); err != nil {
					return nil, err
				}
				result.Renamed = true
				report.Renamed++
			}
		}

		report.Results = append(report.Results, result)
	}

	for _, name := range sortedKeys(counts) {
		report.Counts = append(report.Counts, fragset.TypeCount{TypeName: name, Count: counts[name]})
	}

	if err := writeJSON(r.resultsPath, report.Results); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *Reclassifier) deleteArtifacts(stem, htmlPath string) error {
	if err := os.Remove(htmlPath); err != nil {
		return err
	}
	for _, suffix := range []string{".json", "_annotation.json"} {
		path := filepath.Join(r.negativesDir, stem+suffix)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (r *Reclassifier) renameArtifacts(oldStem, newStem string, verdict fragset.Verdict) error {
	oldHTML := filepath.Join(r.negativesDir, oldStem+".html")
	newHTML := filepath.Join(r.negativesDir, newStem+".html")
	if err := os.Rename(oldHTML, newHTML); err != nil {
		return err
	}

	oldMeta := filepath.Join(r.negativesDir, oldStem+".json")
	newMeta := filepath.Join(r.negativesDir, newStem+".json")
	if err := os.Rename(oldMeta, newMeta); err == nil {
		if err := r.updateMetadata(newMeta, verdict); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	oldAnn := filepath.Join(r.negativesDir, oldStem+"_annotation.json")
	newAnn := filepath.Join(r.negativesDir, newStem+"_annotation.json")
	if err := os.Rename(oldAnn, newAnn); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// updateMetadata rewrites the renamed metadata file's category and rejection
// reason, preserving every other field as-is.
func (r *Reclassifier) updateMetadata(path string, verdict fragset.Verdict) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var metadata map[string]any
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return err
	}
	metadata["negative_type"] = verdict.NegativeType
	metadata["rejection_reason"] = verdict.Reason
	return writeJSON(path, metadata)
}

// parseNegativeStem recovers the expected positive type and fragment ID from
// a negative file stem such as "recipe_lowscore_1a2b3c4d" or
// "authrequired_1a2b3c4d". Category prefixes carry no expected type, so
// those default to product.
func parseNegativeStem(stem string) (expectedType, fragmentID string) {
	parts := strings.Split(stem, "_")
	fragmentID = parts[len(parts)-1]

	prefix := strings.Join(parts[:len(parts)-1], "_")
	prefix = strings.TrimSuffix(prefix, "_lowscore")
	if knownExpectedTypes[prefix] {
		return prefix, fragmentID
	}
	return "product", fragmentID
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
