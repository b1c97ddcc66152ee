package fragset

import (
	"context"
	"encoding/json"
)

// GoldenExample is a human-verified (html, json) pair used as ground truth.
// Immutable once written to the golden dataset.
type GoldenExample struct {
	ExampleHTML  string         `json:"example_html"`
	ExpectedJSON map[string]any `json:"expected_json"`

	// Metadata carries augmentation provenance for synthetic variations.
	// Omitted for base examples.
	Metadata *ExampleMetadata `json:"_metadata,omitempty"`
}

// ExampleMetadata records how a synthetic variation was produced.
type ExampleMetadata struct {
	VariationID   int      `json:"variation_id"`
	Augmentations []string `json:"augmentations"`
}

// Type returns the schema type discriminator of the expected JSON, or "".
func (e *GoldenExample) Type() string {
	t, _ := e.ExpectedJSON["type"].(string)
	return t
}

// Validate returns an error if the example is not a well-formed golden pair.
func (e *GoldenExample) Validate() error {
	if e.ExampleHTML == "" {
		return Errorf(EINVALID, "golden example missing 'example_html'")
	}
	if e.ExpectedJSON == nil {
		return Errorf(EINVALID, "golden example missing 'expected_json'")
	}
	if e.Type() == "" {
		return Errorf(EINVALID, "golden example missing 'type' in expected_json")
	}
	return nil
}

// ConsolidateReport summarizes one consolidation of verified annotations
// into the golden dataset.
type ConsolidateReport struct {
	Loaded     int         `json:"loaded"`
	TypeCounts []TypeCount `json:"type_counts"`
	Errors     []string    `json:"errors,omitempty"`
	OutputPath string      `json:"output_path"`
}

// GoldenConsolidator aggregates human-verified annotation files into the
// golden dataset. Malformed files are reported and skipped, never silently
// dropped.
type GoldenConsolidator interface {
	Consolidate(ctx context.Context) (*ConsolidateReport, error)
}

// Augmenter produces a structurally perturbed variant of an HTML snippet.
// The returned names identify which perturbations were applied, in order.
// Augmentation must never alter the visible content the expected JSON was
// extracted from.
type Augmenter interface {
	Augment(html string) (augmented string, applied []string)
}

// ChatMessage is one turn in the downstream chat training format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatExample is one training example in the chat format consumed by the
// fine-tuning collaborator.
type ChatExample struct {
	Messages []ChatMessage `json:"messages"`
}

// MarshalLine serializes the example as one JSON Lines record.
func (e *ChatExample) MarshalLine() ([]byte, error) {
	return json.Marshal(e)
}
