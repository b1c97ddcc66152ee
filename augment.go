package fragset

// Default target sizes for the augmented partitions. The test partition is
// never augmented so its examples stay pristine for generalization checks.
const (
	DefaultTrainTargetSize = 400
	DefaultValTargetSize   = 50
)

// ExpandDataset grows a base partition to roughly target examples by
// generating synthetic variations of each base example. Every base example
// is kept verbatim; the remaining budget is distributed evenly across bases,
// with the leftover going one extra variation each to the earliest bases.
// Variation IDs number the synthetic examples in generation order.
func ExpandDataset(base []*GoldenExample, target int, augmenter Augmenter) ([]*GoldenExample, error) {
	if len(base) == 0 {
		return nil, Errorf(EINVALID, "cannot augment an empty partition")
	}
	if augmenter == nil {
		return nil, Errorf(EINVALID, "augmenter required")
	}

	perBase, extra := 0, 0
	if target > len(base) {
		perBase = (target - len(base)) / len(base)
		extra = (target - len(base)) % len(base)
	}

	out := make([]*GoldenExample, 0, target)
	variationID := 0

	for idx, example := range base {
		out = append(out, example)

		n := perBase
		if idx < extra {
			n++
		}
		for i := 0; i < n; i++ {
			html, applied := augmenter.Augment(example.ExampleHTML)
			if applied == nil {
				applied = []string{}
			}
			out = append(out, &GoldenExample{
				ExampleHTML:  html,
				ExpectedJSON: example.ExpectedJSON,
				Metadata: &ExampleMetadata{
					VariationID:   variationID,
					Augmentations: applied,
				},
			})
			variationID++
		}
	}

	return out, nil
}
