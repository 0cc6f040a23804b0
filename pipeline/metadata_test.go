package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nbsatlas/nbsharvest"
	"github.com/nbsatlas/nbsharvest/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMetadata_MissingDocument(t *testing.T) {
	t.Parallel()

	m, err := pipeline.LoadMetadata(t.TempDir())

	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestLoadMetadata_MalformedDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, pipeline.MetadataFilename), []byte("{not json"), 0644))

	_, err := pipeline.LoadMetadata(dir)

	require.Error(t, err)
}

func TestLoadMetadata_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := `{
		"successful_files": [
			{"filename": "case_1.html", "link": "https://oppla.eu/casestudy/1"},
			{"filename": "case_2.html", "link": ""}
		],
		"failed_files": [
			{"filename": "case_9.html", "link": "https://oppla.eu/casestudy/9"}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, pipeline.MetadataFilename), []byte(doc), 0644))

	m, err := pipeline.LoadMetadata(dir)
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "https://oppla.eu/casestudy/1", m.URLFor("case_1.html"))
	assert.Equal(t, nbsharvest.Unknown, m.URLFor("case_2.html"), "empty link resolves to unknown")
	assert.Equal(t, nbsharvest.Unknown, m.URLFor("case_9.html"), "failed files never resolve")
	assert.Equal(t, nbsharvest.Unknown, m.URLFor("absent.html"))
}

func TestMetadata_URLFor_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *pipeline.Metadata

	assert.Equal(t, nbsharvest.Unknown, m.URLFor("anything.html"))
}
