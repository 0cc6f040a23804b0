package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/nbsatlas/nbsharvest"
	main "github.com/nbsatlas/nbsharvest/cmd/nbsharvest"
	"github.com/nbsatlas/nbsharvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes filtered records to the requested path and format", func(t *testing.T) {
		t.Parallel()

		stored := []*nbsharvest.Record{
			{ID: "rec-1", Title: "Pocket park", DataSource: "oppla", SourceURL: "https://oppla.eu/casestudy/1"},
		}

		var gotFilter nbsharvest.RecordFilter
		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, filter nbsharvest.RecordFilter) ([]*nbsharvest.Record, error) {
				gotFilter = filter
				return stored, nil
			},
		}

		var gotPath string
		var gotFormat nbsharvest.Format
		var gotRecords []*nbsharvest.Record
		dataset := &mock.DatasetWriter{
			WriteDatasetFn: func(_ context.Context, recs []*nbsharvest.Record, path string, format nbsharvest.Format) error {
				gotRecords, gotPath, gotFormat = recs, path, format
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
			Dataset: dataset,
		}

		cmd := &main.ExportCmd{Output: "out.json", Format: "json", Source: "oppla"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		require.NotNil(t, gotFilter.DataSource)
		assert.Equal(t, "oppla", *gotFilter.DataSource)
		assert.Equal(t, "out.json", gotPath)
		assert.Equal(t, nbsharvest.FormatJSON, gotFormat)
		assert.Len(t, gotRecords, 1)
		assert.Contains(t, stdout.String(), "Exported 1 records to out.json")
	})

	t.Run("rejects unsupported formats before touching the store", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ nbsharvest.RecordFilter) ([]*nbsharvest.Record, error) {
				t.Fatal("store should not be queried for an invalid format")
				return nil, nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: records,
		}

		cmd := &main.ExportCmd{Output: "out.parquet", Format: "parquet"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, nbsharvest.EINVALID, nbsharvest.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
