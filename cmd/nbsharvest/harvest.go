package main

import (
	"fmt"

	"github.com/nbsatlas/nbsharvest"
	"github.com/nbsatlas/nbsharvest/pipeline"
)

// Run executes the harvest command.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	if deps.Processor == nil {
		return nbsharvest.Errorf(nbsharvest.EINTERNAL, "pipeline not configured")
	}

	stats, err := deps.Processor.ProcessDirectory(deps.Ctx, c.Dir, c.Source, func(ev pipeline.ProgressEvent) {
		switch ev.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Processing %d files from %s\n", ev.Total, c.Dir)
		case pipeline.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "[%d/%d] skip %s (already processed)\n", ev.Completed, ev.Total, ev.File)
		case pipeline.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "[%d/%d] saved %s\n", ev.Completed, ev.Total, ev.File)
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] failed %s: %s\n", ev.Completed, ev.Total, ev.File, nbsharvest.ErrorMessage(ev.Error))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nbsharvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d/%d files processed (%s), dataset at %s\n",
		stats.ProcessedFiles, stats.TotalFiles, stats.SuccessRate, c.Output)

	return nil
}
