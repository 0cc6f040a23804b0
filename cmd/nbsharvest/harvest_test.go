package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nbsatlas/nbsharvest"
	main "github.com/nbsatlas/nbsharvest/cmd/nbsharvest"
	"github.com/nbsatlas/nbsharvest/fs"
	"github.com/nbsatlas/nbsharvest/goquery"
	"github.com/nbsatlas/nbsharvest/mock"
	"github.com/nbsatlas/nbsharvest/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarvestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("processes a directory end to end and reports run totals", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := "<html><body><p>" + longParagraph() + "</p></body></html>"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "case1.html"), []byte(page), 0644))

		fields := &mock.FieldExtractor{
			ExtractFieldsFn: func(_ context.Context, _ string) (map[string]any, error) {
				return map[string]any{
					"title":      "River daylighting in Utrecht",
					"url_source": "https://oppla.eu/casestudy/1",
				}, nil
			},
		}
		records, stored := mock.NewMemoryRecordService()

		output := filepath.Join(t.TempDir(), "dataset.csv")
		processor := &pipeline.Processor{
			Text:       goquery.NewTextExtractor(),
			Fields:     fields,
			Records:    records,
			Dataset:    fs.NewWriter(),
			OutputPath: output,
			Format:     nbsharvest.FormatCSV,
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Records:   records,
			Processor: processor,
		}

		cmd := &main.HarvestCmd{Dir: dir, Output: output, Source: "oppla"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		require.Len(t, *stored, 1)
		assert.Equal(t, "oppla", (*stored)[0].DataSource)
		assert.FileExists(t, output)

		out := stdout.String()
		assert.Contains(t, out, "Processing 1 files")
		assert.Contains(t, out, "saved case1.html")
		assert.Contains(t, out, "Done: 1/1 files processed (100.0%)")
	})

	t.Run("fails when the pipeline is not configured", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		cmd := &main.HarvestCmd{Dir: "pages", Output: "out.csv", Source: "oppla"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, nbsharvest.EINTERNAL, nbsharvest.ErrorCode(err))
	})

	t.Run("missing directory is fatal and reported on stderr", func(t *testing.T) {
		t.Parallel()

		records, _ := mock.NewMemoryRecordService()
		processor := &pipeline.Processor{
			Text:    goquery.NewTextExtractor(),
			Fields:  &mock.FieldExtractor{},
			Records: records,
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Records:   records,
			Processor: processor,
		}

		cmd := &main.HarvestCmd{Dir: filepath.Join(t.TempDir(), "missing"), Output: "out.csv", Source: "oppla"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

// longParagraph returns body text comfortably above the default minimum
// text length.
func longParagraph() string {
	s := "The city restored the buried stream corridor and planted native species along its banks. "
	return s + s + s
}
