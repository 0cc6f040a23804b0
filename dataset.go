package nbsharvest

import (
	"context"
	"strings"
)

// Format identifies a supported dataset output format.
type Format string

// Supported dataset output formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat normalizes a raw value to a Format.
// Returns EINVALID for unsupported formats.
func ParseFormat(s string) (Format, error) {
	switch v := Format(strings.ToLower(strings.TrimSpace(s))); v {
	case FormatCSV, FormatJSON, FormatXLSX:
		return v, nil
	default:
		return "", Errorf(EINVALID, "unsupported format %q", s)
	}
}

// DatasetWriter serializes an accumulated record set to a tabular file.
// Implementations also write a sibling field-description document next to
// the dataset (same base name, "_dictionary.json" suffix).
type DatasetWriter interface {
	// WriteDataset writes all records to path in the given format,
	// replacing any previous content. Column order is FieldNames order.
	WriteDataset(ctx context.Context, records []*Record, path string, format Format) error
}
