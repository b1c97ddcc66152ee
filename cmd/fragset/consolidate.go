package main

import (
	"fmt"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/fs"
)

// Run executes the consolidate command.
func (c *ConsolidateCmd) Run(deps *Dependencies) error {
	consolidator := fs.NewConsolidator(c.Manual, c.Output)
	report, err := consolidator.Consolidate(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}

	for _, msg := range report.Errors {
		fmt.Fprintf(deps.Stderr, "  skip %s\n", msg)
	}
	fmt.Fprintf(deps.Stdout, "Consolidated %d examples into %s\n", report.Loaded, report.OutputPath)
	for _, count := range report.TypeCounts {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", count.TypeName, count.Count)
	}
	return nil
}
