package main

import (
	"fmt"

	"github.com/nbsatlas/nbsharvest"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	format, err := nbsharvest.ParseFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nbsharvest.ErrorMessage(err))
		return err
	}

	filter := nbsharvest.RecordFilter{}
	if c.Source != "" {
		filter.DataSource = &c.Source
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nbsharvest.ErrorMessage(err))
		return err
	}

	if err := deps.Dataset.WriteDataset(deps.Ctx, records, c.Output, format); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nbsharvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d records to %s\n", len(records), c.Output)

	return nil
}
