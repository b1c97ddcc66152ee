package main

import (
	"fmt"

	"github.com/mzalewski/fragset"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	byType, err := deps.Index.CountByType(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}

	valid, negatives, err := deps.Index.CountByVerdict(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}

	if len(byType) == 0 {
		fmt.Fprintln(deps.Stdout, "No fragments recorded. Use 'fragset collect' to gather some.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, "Fragments by type:")
	for _, count := range byType {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", count.TypeName, count.Count)
	}

	fmt.Fprintf(deps.Stdout, "Valid: %d\n", valid)
	if len(negatives) > 0 {
		fmt.Fprintln(deps.Stdout, "Negatives:")
		for _, count := range negatives {
			fmt.Fprintf(deps.Stdout, "  %s: %d\n", count.TypeName, count.Count)
		}
	}
	return nil
}
