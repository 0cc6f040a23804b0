package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nbsatlas/nbsharvest"
	"github.com/nbsatlas/nbsharvest/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testRecords() []*nbsharvest.Record {
	return []*nbsharvest.Record{
		{
			ID:                    "rec-1",
			Title:                 "Urban Wetland Restoration",
			Summary:               "Restoration of urban wetlands.",
			Status:                nbsharvest.StatusCompleted,
			LocationName:          "Amager District, Copenhagen",
			Country:               "Denmark",
			Scale:                 nbsharvest.ScaleNeighborhood,
			SolutionTypes:         []string{"urban wetlands", "green corridors"},
			ChallengesAddressed:   []string{"flooding"},
			HealthLinkagesPrimary: []string{},
			Impacts:               []string{"30% reduction in local flooding"},
			Governance:            "Copenhagen Municipality",
			SourceURL:             "https://oppla.eu/casestudy/21553",
			EnvironmentalContext:  nbsharvest.EnvUrban,
			DataSource:            "oppla",
			SourceFile:            "case_21553.html",
			ProcessedAt:           time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		},
	}
}

func TestWriteDataset_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nbs.csv")
	err := fs.NewWriter().WriteDataset(context.Background(), testRecords(), path, nbsharvest.FormatCSV)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(b)

	assert.True(t, strings.HasPrefix(content, "\ufeff"), "expected UTF-8 BOM")

	lines := strings.Split(strings.TrimPrefix(content, "\ufeff"), "\n")
	assert.Equal(t, strings.Join(nbsharvest.FieldNames(), ","), strings.TrimRight(lines[0], "\r"))
	assert.Contains(t, lines[1], "Urban Wetland Restoration")
	assert.Contains(t, lines[1], "urban wetlands; green corridors")
	assert.Contains(t, lines[1], "2026-03-14 15:09:26")
}

func TestWriteDataset_JSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nbs.json")
	err := fs.NewWriter().WriteDataset(context.Background(), testRecords(), path, nbsharvest.FormatJSON)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Urban Wetland Restoration", decoded[0]["title"])
	assert.Equal(t, "https://oppla.eu/casestudy/21553", decoded[0]["url_source"])
}

func TestWriteDataset_JSONEmptyRecordSet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nbs.json")
	err := fs.NewWriter().WriteDataset(context.Background(), nil, path, nbsharvest.FormatJSON)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(b)))
}

func TestWriteDataset_XLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nbs.xlsx")
	err := fs.NewWriter().WriteDataset(context.Background(), testRecords(), path, nbsharvest.FormatXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("NBS Projects", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Urban Wetland Restoration", title)

	header, err := f.GetCellValue("NBS Projects", "A1")
	require.NoError(t, err)
	assert.Equal(t, "title", header)
}

func TestWriteDataset_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nbs.parquet")
	err := fs.NewWriter().WriteDataset(context.Background(), testRecords(), path, nbsharvest.Format("parquet"))

	require.Error(t, err)
	assert.Equal(t, nbsharvest.EINVALID, nbsharvest.ErrorCode(err))
	assert.NoFileExists(t, path)
}

func TestWriteDataset_WritesDictionary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nbs.csv")
	err := fs.NewWriter().WriteDataset(context.Background(), testRecords(), path, nbsharvest.FormatCSV)
	require.NoError(t, err)

	b, err := os.ReadFile(fs.DictionaryPath(path))
	require.NoError(t, err)

	var dict map[string]string
	require.NoError(t, json.Unmarshal(b, &dict))
	assert.Equal(t, nbsharvest.FieldDescriptions(), dict)
}

func TestWriteDataset_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "nested", "nbs.csv")
	err := fs.NewWriter().WriteDataset(context.Background(), testRecords(), path, nbsharvest.FormatCSV)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestDictionaryPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "out/nbs_dictionary.json", fs.DictionaryPath("out/nbs.csv"))
	assert.Equal(t, "nbs_dictionary.json", fs.DictionaryPath("nbs.xlsx"))
}
