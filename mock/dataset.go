package mock

import (
	"context"

	"github.com/nbsatlas/nbsharvest"
)

var _ nbsharvest.DatasetWriter = (*DatasetWriter)(nil)

// DatasetWriter is a mock implementation of nbsharvest.DatasetWriter.
type DatasetWriter struct {
	WriteDatasetFn func(ctx context.Context, records []*nbsharvest.Record, path string, format nbsharvest.Format) error
}

func (w *DatasetWriter) WriteDataset(ctx context.Context, records []*nbsharvest.Record, path string, format nbsharvest.Format) error {
	return w.WriteDatasetFn(ctx, records, path, format)
}
