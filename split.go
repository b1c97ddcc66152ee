package fragset

import (
	"math"
	"math/rand"
	"sort"
)

// SplitConfig controls the stratified train/val/test split.
type SplitConfig struct {
	Seed       int64
	TrainRatio float64
	ValRatio   float64
	TestRatio  float64
}

// DefaultSplitConfig is the standard 80/10/10 split.
var DefaultSplitConfig = SplitConfig{
	Seed:       42,
	TrainRatio: 0.8,
	ValRatio:   0.1,
	TestRatio:  0.1,
}

// Split holds the three dataset partitions. Splitting happens before
// augmentation so variations of one base example never straddle partitions.
type Split struct {
	Train []*GoldenExample
	Val   []*GoldenExample
	Test  []*GoldenExample
}

// Total returns the number of examples across all partitions.
func (s *Split) Total() int {
	return len(s.Train) + len(s.Val) + len(s.Test)
}

// SplitDataset partitions examples stratified by schema type. Within each
// type the examples are shuffled with the configured seed, then allocated to
// train first and the remainder divided between val and test, so per-type
// counts always sum to the type's total. Deterministic for a fixed seed.
func SplitDataset(examples []*GoldenExample, cfg SplitConfig) (*Split, error) {
	if len(examples) == 0 {
		return nil, Errorf(EINVALID, "cannot split an empty dataset")
	}
	if sum := cfg.TrainRatio + cfg.ValRatio + cfg.TestRatio; math.Abs(sum-1.0) > 1e-9 {
		return nil, Errorf(EINVALID, "split ratios must sum to 1.0, got %.3f", sum)
	}

	byType := map[string][]*GoldenExample{}
	for _, example := range examples {
		t := example.Type()
		if t == "" {
			return nil, Errorf(EINVALID, "example missing 'type' in expected_json")
		}
		byType[t] = append(byType[t], example)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	rng := rand.New(rand.NewSource(cfg.Seed))
	split := &Split{}

	for _, t := range types {
		group := byType[t]
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})

		n := len(group)
		trainN := int(math.Round(float64(n) * cfg.TrainRatio))
		rest := n - trainN

		valN := 0
		if restRatio := cfg.ValRatio + cfg.TestRatio; restRatio > 0 {
			valN = int(math.Round(float64(rest) * cfg.ValRatio / restRatio))
		}

		split.Train = append(split.Train, group[:trainN]...)
		split.Val = append(split.Val, group[trainN:trainN+valN]...)
		split.Test = append(split.Test, group[trainN+valN:]...)
	}

	return split, nil
}
