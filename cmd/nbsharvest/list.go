package main

import (
	"fmt"

	"github.com/nbsatlas/nbsharvest"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := nbsharvest.RecordFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.DataSource = &c.Source
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nbsharvest.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'nbsharvest harvest' to process a directory.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %-40s  %s\n", r.ID, r.DataSource, truncate(r.Title, 40), r.SourceURL)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
