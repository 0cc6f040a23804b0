// Package fs provides file-based dataset export for nbsharvest.
package fs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/nbsatlas/nbsharvest"
	"github.com/xuri/excelize/v2"
)

// utf8BOM is prepended to CSV output so spreadsheet applications detect
// the encoding of non-ASCII place names correctly.
const utf8BOM = "\ufeff"

// sheetName is the worksheet name used for xlsx exports.
const sheetName = "NBS Projects"

// timeLayout formats the processed_date column.
const timeLayout = "2006-01-02 15:04:05"

// Ensure Writer implements nbsharvest.DatasetWriter at compile time.
var _ nbsharvest.DatasetWriter = (*Writer)(nil)

// Writer serializes record sets to tabular files. Every write also
// produces the sibling "<base>_dictionary.json" field-description
// document.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteDataset writes all records to path in the given format, replacing
// any previous content. Column order is nbsharvest.FieldNames order.
func (w *Writer) WriteDataset(ctx context.Context, records []*nbsharvest.Record, path string, format nbsharvest.Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	var err error
	switch format {
	case nbsharvest.FormatCSV:
		err = writeCSV(records, path)
	case nbsharvest.FormatJSON:
		err = writeJSON(records, path)
	case nbsharvest.FormatXLSX:
		err = writeXLSX(records, path)
	default:
		return nbsharvest.Errorf(nbsharvest.EINVALID, "unsupported format %q", format)
	}
	if err != nil {
		return err
	}

	return writeDictionary(path)
}

// DictionaryPath derives the field-description document path from the
// dataset path: same base name, "_dictionary.json" suffix.
func DictionaryPath(datasetPath string) string {
	base := strings.TrimSuffix(datasetPath, filepath.Ext(datasetPath))
	return base + "_dictionary.json"
}

func writeDictionary(datasetPath string) error {
	b, err := json.MarshalIndent(nbsharvest.FieldDescriptions(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(DictionaryPath(datasetPath), b, 0644)
}

func writeCSV(records []*nbsharvest.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(nbsharvest.FieldNames()); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rowValues(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	return f.Close()
}

func writeJSON(records []*nbsharvest.Record, path string) error {
	if records == nil {
		records = []*nbsharvest.Record{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func writeXLSX(records []*nbsharvest.Record, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	names := nbsharvest.FieldNames()
	header := make([]any, len(names))
	widths := make([]int, len(names))
	for i, name := range names {
		header[i] = name
		widths[i] = len(name)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, rec := range records {
		values := rowValues(rec)
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
			if len(v) > widths[j] {
				widths[j] = len(v)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, float64(min(width+2, 50))); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// rowValues renders a record as a row in FieldNames order. List fields
// are joined with "; " so each record stays a single row.
func rowValues(rec *nbsharvest.Record) []string {
	return []string{
		rec.Title,
		rec.Summary,
		string(rec.Status),
		rec.LocationName,
		rec.Country,
		string(rec.Scale),
		strings.Join(rec.SolutionTypes, "; "),
		strings.Join(rec.ChallengesAddressed, "; "),
		strings.Join(rec.HealthLinkagesPrimary, "; "),
		strings.Join(rec.Impacts, "; "),
		rec.Governance,
		rec.SourceURL,
		string(rec.EnvironmentalContext),
		rec.DataSource,
		rec.SourceFile,
		rec.ProcessedAt.Format(timeLayout),
	}
}
