package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mzalewski/fragset"
)

// Ensure Consolidator implements fragset.GoldenConsolidator at compile time.
var _ fragset.GoldenConsolidator = (*Consolidator)(nil)

// Consolidator aggregates human-verified annotation files into a single
// golden JSONL dataset. Each annotation_*.json file in the manual directory
// holds one complete (example_html, expected_json) pair.
type Consolidator struct {
	manualDir  string
	outputPath string
}

// NewConsolidator creates a Consolidator reading from manualDir and writing
// the golden dataset to outputPath.
func NewConsolidator(manualDir, outputPath string) *Consolidator {
	return &Consolidator{
		manualDir:  manualDir,
		outputPath: outputPath,
	}
}

func (c *Consolidator) Consolidate(ctx context.Context) (*fragset.ConsolidateReport, error) {
	files, err := filepath.Glob(filepath.Join(c.manualDir, "annotation_*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	report := &fragset.ConsolidateReport{OutputPath: c.outputPath}
	var examples []*fragset.GoldenExample
	counts := map[string]int{}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		example, err := loadAnnotation(path)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}
		examples = append(examples, example)
		counts[example.Type()]++
	}

	report.Loaded = len(examples)
	for _, name := range sortedKeys(counts) {
		report.TypeCounts = append(report.TypeCounts, fragset.TypeCount{TypeName: name, Count: counts[name]})
	}

	if err := os.MkdirAll(filepath.Dir(c.outputPath), 0755); err != nil {
		return nil, err
	}
	if err := WriteGolden(c.outputPath, examples); err != nil {
		return nil, err
	}
	return report, nil
}

func loadAnnotation(path string) (*fragset.GoldenExample, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var example fragset.GoldenExample
	if err := json.Unmarshal(raw, &example); err != nil {
		return nil, fragset.Errorf(fragset.EINVALID, "malformed annotation JSON: %v", err)
	}
	if err := example.Validate(); err != nil {
		return nil, err
	}
	return &example, nil
}

// WriteGolden serializes examples as JSON Lines, one example per line.
func WriteGolden(path string, examples []*fragset.GoldenExample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	for _, example := range examples {
		if err := enc.Encode(example); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

// ReadGolden loads a golden JSONL dataset.
func ReadGolden(path string) ([]*fragset.GoldenExample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var examples []*fragset.GoldenExample
	dec := json.NewDecoder(f)
	for dec.More() {
		var example fragset.GoldenExample
		if err := dec.Decode(&example); err != nil {
			return nil, fragset.Errorf(fragset.EINVALID, "malformed golden record %d: %v", len(examples), err)
		}
		examples = append(examples, &example)
	}
	return examples, nil
}
