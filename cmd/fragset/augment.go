package main

import (
	"fmt"
	"path/filepath"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/fs"
)

// Final partition filenames produced by augmentation. The test partition is
// copied through untouched.
const (
	trainFile = "train.jsonl"
	valFile   = "val.jsonl"
	testFile  = "test.jsonl"
)

// Run executes the augment command.
func (c *AugmentCmd) Run(deps *Dependencies) error {
	type job struct {
		baseFile string
		outFile  string
		target   int
	}
	jobs := []job{
		{trainBaseFile, trainFile, c.TrainTarget},
		{valBaseFile, valFile, c.ValTarget},
	}

	for _, j := range jobs {
		base, err := fs.ReadGolden(filepath.Join(c.Dir, j.baseFile))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
			return err
		}

		expanded, err := fragset.ExpandDataset(base, j.target, deps.Augmenter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
			return err
		}

		path := filepath.Join(c.Dir, j.outFile)
		if err := fs.WriteGolden(path, expanded); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "  %s: %d base -> %d examples\n", path, len(base), len(expanded))
	}

	// Test examples stay pristine for generalization checks.
	test, err := fs.ReadGolden(filepath.Join(c.Dir, testBaseFile))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}
	path := filepath.Join(c.Dir, testFile)
	if err := fs.WriteGolden(path, test); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "  %s: %d examples (not augmented)\n", path, len(test))

	return nil
}
