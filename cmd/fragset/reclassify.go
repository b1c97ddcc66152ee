package main

import (
	"fmt"

	"github.com/mzalewski/fragset"
)

// Run executes the reclassify command.
func (c *ReclassifyCmd) Run(deps *Dependencies) error {
	reclassifier := deps.NewReclassifier(c.Seeds)

	report, err := reclassifier.Reclassify(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Processed %d negatives: %d renamed, %d deleted\n",
		report.Processed, report.Renamed, report.Deleted)
	for _, count := range report.Counts {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", count.TypeName, count.Count)
	}
	return nil
}
