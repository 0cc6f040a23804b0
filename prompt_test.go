package nbsharvest_test

import (
	"testing"

	"github.com/nbsatlas/nbsharvest"
	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt_ContainsSourceText(t *testing.T) {
	t.Parallel()

	prompt := nbsharvest.BuildExtractionPrompt("Restoration of the Jordan river banks.")

	assert.Contains(t, prompt, "SOURCE TEXT TO ANALYZE:\nRestoration of the Jordan river banks.")
}

func TestBuildExtractionPrompt_ContainsVocabularies(t *testing.T) {
	t.Parallel()

	prompt := nbsharvest.BuildExtractionPrompt("text")

	assert.Contains(t, prompt, "planned|in-progress|completed|ongoing|unknown")
	assert.Contains(t, prompt, "site|neighborhood|city|watershed|regional|unknown")
	assert.Contains(t, prompt, "urban|coastal|wetland|forest|agricultural|unknown")
}

func TestBuildExtractionPrompt_ContainsAllSchemaFields(t *testing.T) {
	t.Parallel()

	prompt := nbsharvest.BuildExtractionPrompt("text")

	for _, field := range nbsharvest.FieldNames()[:13] {
		assert.Contains(t, prompt, field)
	}
}

func TestBuildExtractionPrompt_ContainsNeverGuessInstruction(t *testing.T) {
	t.Parallel()

	prompt := nbsharvest.BuildExtractionPrompt("text")

	assert.Contains(t, prompt, "Never guess or make assumptions")
	assert.Contains(t, prompt, "exactly these 13 fields")
}

func TestBuildExtractionPrompt_Deterministic(t *testing.T) {
	t.Parallel()

	a := nbsharvest.BuildExtractionPrompt("same input")
	b := nbsharvest.BuildExtractionPrompt("same input")

	assert.Equal(t, a, b)
}
