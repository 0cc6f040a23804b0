package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nbsatlas/nbsharvest"
)

// StatsFilename is the run-statistics document written into the processed
// directory after each run.
const StatsFilename = "processing_stats.json"

// statsTimeLayout formats the processed_date stats field.
const statsTimeLayout = "2006-01-02 15:04:05"

// Stats summarizes one processing run over a directory.
type Stats struct {
	TotalFiles     int    `json:"total_files"`
	ProcessedFiles int    `json:"processed_files"`
	SuccessRate    string `json:"success_rate"`
	ProcessedDate  string `json:"processed_date"`
	SourceType     string `json:"source_type"`
}

// NewStats builds run statistics for a finished directory pass.
func NewStats(totalFiles, processedFiles int, sourceType string, finished time.Time) *Stats {
	rate := 0.0
	if totalFiles > 0 {
		rate = float64(processedFiles) / float64(totalFiles) * 100
	}
	if sourceType == "" {
		sourceType = nbsharvest.Unknown
	}
	return &Stats{
		TotalFiles:     totalFiles,
		ProcessedFiles: processedFiles,
		SuccessRate:    fmt.Sprintf("%.1f%%", rate),
		ProcessedDate:  finished.Format(statsTimeLayout),
		SourceType:     sourceType,
	}
}

// WriteStats persists stats into dir as StatsFilename.
func WriteStats(dir string, stats *Stats) error {
	b, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, StatsFilename), b, 0644)
}
