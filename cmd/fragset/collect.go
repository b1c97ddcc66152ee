package main

import (
	"fmt"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/crawl"
	"github.com/mzalewski/fragset/yaml"
)

// Run executes the collect command.
func (c *CollectCmd) Run(deps *Dependencies) error {
	plan, err := c.loadPlan()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCollected:
			fmt.Fprintf(deps.Stdout, "  saved %s: %s (score %.2f)\n",
				event.FragmentType, event.URL, event.Verdict.Score)
		case crawl.ProgressRejected:
			fmt.Fprintf(deps.Stdout, "  negative %s: %s (%s)\n",
				event.FragmentType, event.URL, event.Verdict.NegativeType)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Collector.Collect(deps.Ctx, plan, c.Categories, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Collected %d fragments (%d discovered, %d negatives, %d failed)\n",
		result.Collected, result.Discovered, result.Rejected, result.Failed)
	return nil
}

func (c *CollectCmd) loadPlan() (*fragset.Plan, error) {
	if c.Plan == "" {
		return yaml.DefaultPlan(), nil
	}
	return yaml.LoadPlan(c.Plan)
}
