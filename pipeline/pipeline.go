// Package pipeline orchestrates incremental extraction over a directory of
// saved case-study pages. It coordinates text extraction, LLM field
// extraction, validation and durable storage, one file at a time.
//
// Processing is strictly sequential: correctness depends on global
// de-duplication against the accumulating record set, which is simplest to
// reason about with sequential writes. The LLM call is the only operation
// with nontrivial latency and is never parallelized.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/nbsatlas/nbsharvest"
	"golang.org/x/time/rate"
)

// DefaultMinTextLen is the minimum extracted-text length worth sending to
// the LLM. Shorter pages are download stubs or error pages.
const DefaultMinTextLen = 100

// Processor runs the extraction pipeline over directories of HTML files.
type Processor struct {
	Text    nbsharvest.TextExtractor
	Fields  nbsharvest.FieldExtractor
	Records nbsharvest.RecordService

	// Dataset, when set together with OutputPath, receives the full
	// accumulated record set after every new record as an
	// overwrite-on-write checkpoint.
	Dataset    nbsharvest.DatasetWriter
	OutputPath string
	Format     nbsharvest.Format

	// Limiter, when set, paces LLM calls.
	Limiter *rate.Limiter

	// MinTextLen overrides DefaultMinTextLen when positive.
	MinTextLen int

	Logger *slog.Logger
}

// ProgressEvent reports progress during a directory run.
type ProgressEvent struct {
	Type      ProgressType
	File      string
	URL       string
	Completed int
	Total     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSkipped
	ProgressSaved
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// ProcessDirectory processes every HTML file in dir, in file-listing
// order, and returns run statistics. Per-file failures are logged and
// skipped; the operation fails only if the directory cannot be listed or
// the record store cannot be read. The stats document is written into dir
// before returning.
func (p *Processor) ProcessDirectory(ctx context.Context, dir, sourceType string, progress ProgressFunc) (*Stats, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	files, err := listHTMLFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list directory %q: %w", dir, err)
	}

	metadata, err := LoadMetadata(dir)
	if err != nil {
		logger.Warn("could not load download metadata", "dir", dir, "error", err)
	}

	known, err := p.Records.SourceURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load known source URLs: %w", err)
	}

	// The accumulated set starts from what the store already holds so the
	// checkpoint file is always the full dataset, not just this run.
	accumulated, err := p.Records.FindRecords(ctx, nbsharvest.RecordFilter{})
	if err != nil {
		return nil, fmt.Errorf("load existing records: %w", err)
	}

	notify(progress, ProgressEvent{Type: ProgressStarted, Total: len(files)})

	minLen := p.MinTextLen
	if minLen <= 0 {
		minLen = DefaultMinTextLen
	}

	processed := 0
	for i, file := range files {
		if ctx.Err() != nil {
			break
		}

		name := filepath.Base(file)
		url := metadata.URLFor(name)

		// Files whose URL resolved to a known record are skipped without
		// touching the LLM. The "unknown" sentinel never matches, so
		// files without resolvable URLs are reprocessed on every run.
		if url != nbsharvest.Unknown && known[url] {
			logger.Info("skipping already processed file", "file", name, "url", url)
			notify(progress, ProgressEvent{Type: ProgressSkipped, File: name, URL: url, Completed: i + 1, Total: len(files)})
			continue
		}

		rec, err := p.processFile(ctx, file, url, sourceType)
		if err != nil {
			logger.Warn("skipping file", "file", name, "error", err)
			notify(progress, ProgressEvent{Type: ProgressFailed, File: name, URL: url, Completed: i + 1, Total: len(files), Error: err})
			continue
		}

		if err := p.Records.CreateRecord(ctx, rec); err != nil {
			logger.Warn("could not store record", "file", name, "error", err)
			notify(progress, ProgressEvent{Type: ProgressFailed, File: name, URL: url, Completed: i + 1, Total: len(files), Error: err})
			continue
		}

		if url != nbsharvest.Unknown {
			known[url] = true
		}
		processed++
		accumulated = append(accumulated, rec)

		if p.Dataset != nil && p.OutputPath != "" {
			if err := p.Dataset.WriteDataset(ctx, accumulated, p.OutputPath, p.Format); err != nil {
				logger.Warn("could not write dataset checkpoint", "path", p.OutputPath, "error", err)
			}
		}

		notify(progress, ProgressEvent{Type: ProgressSaved, File: name, URL: rec.SourceURL, Completed: i + 1, Total: len(files)})
	}

	stats := NewStats(len(files), processed, sourceType, time.Now())
	if err := WriteStats(dir, stats); err != nil {
		logger.Warn("could not write processing stats", "dir", dir, "error", err)
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Completed: len(files), Total: len(files)})

	return stats, nil
}

// processFile extracts, prompts, validates and decorates one file into a
// record ready for storage.
func (p *Processor) processFile(ctx context.Context, file, url, sourceType string) (*nbsharvest.Record, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	text, err := p.Text.ExtractText(string(raw))
	if err != nil {
		return nil, err
	}
	if len(text) < p.minTextLen() {
		return nil, nbsharvest.Errorf(nbsharvest.EINVALID, "insufficient content (%d chars)", len(text))
	}

	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	prompt := nbsharvest.BuildExtractionPrompt(text)
	fields, err := p.Fields.ExtractFields(ctx, prompt)
	if err != nil {
		return nil, err
	}

	rec := nbsharvest.ValidateEntry(fields)
	rec.SourceURL = url
	rec.DataSource = sourceType
	rec.SourceFile = file
	rec.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64String(text))
	rec.ProcessedAt = time.Now().UTC()

	return rec, nil
}

func (p *Processor) minTextLen() int {
	if p.MinTextLen > 0 {
		return p.MinTextLen
	}
	return DefaultMinTextLen
}

// listHTMLFiles returns the .html files in dir in listing order.
func listHTMLFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".html") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
