package main

import (
	"context"
	"io"

	"github.com/nbsatlas/nbsharvest"
	"github.com/nbsatlas/nbsharvest/pipeline"
	"github.com/nbsatlas/nbsharvest/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Records   nbsharvest.RecordService
	Dataset   nbsharvest.DatasetWriter
	Processor *pipeline.Processor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Harvest HarvestCmd `cmd:"" help:"Extract records from a directory of saved case-study pages"`
	Export  ExportCmd  `cmd:"" help:"Export the accumulated dataset to a tabular file"`
	List    ListCmd    `cmd:"" help:"List accumulated records"`
}

// HarvestCmd is the "harvest" subcommand.
type HarvestCmd struct {
	Dir    string `arg:"" help:"Directory of HTML files to process"`
	Output string `arg:"" help:"Dataset checkpoint path (written after every record)"`
	Source string `short:"s" required:"" help:"Source catalog label attached to every record (e.g. oppla, unacity)"`

	Format    string  `short:"f" default:"csv" help:"Checkpoint format (csv|json|xlsx)"`
	Provider  string  `short:"p" default:"openai" enum:"openai,gemini" help:"LLM provider"`
	Model     string  `short:"m" help:"Override the provider's default model"`
	Extractor string  `short:"e" default:"full" enum:"full,readability,trafilatura" help:"Text extraction strategy (full page text, or main content via readability or trafilatura)"`
	MinText   int     `default:"100" help:"Minimum extracted text length worth processing"`
	RPM       float64 `name:"rpm" default:"0" help:"LLM requests per minute (0 = unlimited)"`
	Verbose   bool    `short:"v" help:"Log each LLM call"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output string `arg:"" help:"Output file path"`

	Format string `short:"f" default:"csv" help:"Output format (csv|json|xlsx)"`
	Source string `short:"s" help:"Only export records from this source catalog"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Source string `short:"s" help:"Only list records from this source catalog"`
	Limit  int    `short:"n" help:"Maximum number of records to show"`
}
