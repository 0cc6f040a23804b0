// Package slog provides logging decorators for nbsharvest services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/nbsatlas/nbsharvest"
)

// Ensure LoggingExtractor implements nbsharvest.FieldExtractor.
var _ nbsharvest.FieldExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a FieldExtractor with debug logging for LLM
// calls, the one operation in a run with nontrivial, variable latency.
type LoggingExtractor struct {
	next   nbsharvest.FieldExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next nbsharvest.FieldExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractFields delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) ExtractFields(ctx context.Context, prompt string) (map[string]any, error) {
	begin := time.Now()
	fields, err := e.next.ExtractFields(ctx, prompt)
	if err != nil {
		e.logger.Warn("llm extraction failed",
			"prompt_bytes", len(prompt),
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	e.logger.Info("llm extraction",
		"prompt_bytes", len(prompt),
		"fields", len(fields),
		"duration", time.Since(begin),
	)
	return fields, nil
}
