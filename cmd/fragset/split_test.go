package main_test

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzalewski/fragset"
	main "github.com/mzalewski/fragset/cmd/fragset"
	"github.com/mzalewski/fragset/fs"
)

// writeGoldenDataset writes n recipe examples as a golden JSONL file.
func writeGoldenDataset(t *testing.T, n int) string {
	t.Helper()
	examples := make([]*fragset.GoldenExample, 0, n)
	for i := 0; i < n; i++ {
		examples = append(examples, &fragset.GoldenExample{
			ExampleHTML:  fmt.Sprintf("<div>example %d</div>", i),
			ExpectedJSON: map[string]any{"type": "recipe", "name": fmt.Sprintf("Example %d", i)},
		})
	}
	path := filepath.Join(t.TempDir(), "golden.jsonl")
	require.NoError(t, fs.WriteGolden(path, examples))
	return path
}

func TestCmdSplit(t *testing.T) {
	t.Parallel()

	t.Run("writes three base partitions", func(t *testing.T) {
		t.Parallel()

		input := writeGoldenDataset(t, 10)
		outputDir := t.TempDir()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
		}

		cmd := &main.SplitCmd{
			Input:      input,
			OutputDir:  outputDir,
			Seed:       42,
			TrainRatio: 0.8,
			ValRatio:   0.1,
			TestRatio:  0.1,
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Split 10 examples into 8/1/1")

		train, err := fs.ReadGolden(filepath.Join(outputDir, "train_base.jsonl"))
		require.NoError(t, err)
		val, err := fs.ReadGolden(filepath.Join(outputDir, "val_base.jsonl"))
		require.NoError(t, err)
		test, err := fs.ReadGolden(filepath.Join(outputDir, "test_base.jsonl"))
		require.NoError(t, err)

		assert.Len(t, train, 8)
		assert.Len(t, val, 1)
		assert.Len(t, test, 1)
	})

	t.Run("rejects ratios that do not sum to one", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.SplitCmd{
			Input:      writeGoldenDataset(t, 4),
			OutputDir:  t.TempDir(),
			Seed:       42,
			TrainRatio: 0.9,
			ValRatio:   0.3,
			TestRatio:  0.1,
		}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, fragset.EINVALID, fragset.ErrorCode(err))
		assert.Contains(t, stderr.String(), "sum to 1.0")
	})

	t.Run("returns error for missing input", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		cmd := &main.SplitCmd{
			Input:      filepath.Join(t.TempDir(), "missing.jsonl"),
			OutputDir:  t.TempDir(),
			TrainRatio: 0.8,
			ValRatio:   0.1,
			TestRatio:  0.1,
		}
		err := cmd.Run(deps)

		require.Error(t, err)
	})
}
