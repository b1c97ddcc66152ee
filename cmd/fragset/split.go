package main

import (
	"fmt"
	"path/filepath"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/fs"
)

// Base partition filenames. The augment command reads these and writes the
// final train/val/test files next to them.
const (
	trainBaseFile = "train_base.jsonl"
	valBaseFile   = "val_base.jsonl"
	testBaseFile  = "test_base.jsonl"
)

// Run executes the split command.
func (c *SplitCmd) Run(deps *Dependencies) error {
	examples, err := fs.ReadGolden(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}

	split, err := fragset.SplitDataset(examples, fragset.SplitConfig{
		Seed:       c.Seed,
		TrainRatio: c.TrainRatio,
		ValRatio:   c.ValRatio,
		TestRatio:  c.TestRatio,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}

	partitions := []struct {
		name     string
		examples []*fragset.GoldenExample
	}{
		{trainBaseFile, split.Train},
		{valBaseFile, split.Val},
		{testBaseFile, split.Test},
	}
	for _, p := range partitions {
		path := filepath.Join(c.OutputDir, p.name)
		if err := fs.WriteGolden(path, p.examples); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "  %s: %d examples\n", path, len(p.examples))
	}

	fmt.Fprintf(deps.Stdout, "Split %d examples into %d/%d/%d\n",
		split.Total(), len(split.Train), len(split.Val), len(split.Test))
	return nil
}
