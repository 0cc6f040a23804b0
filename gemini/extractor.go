// Package gemini provides a FieldExtractor backed by Google Gemini.
package gemini

import (
	"context"

	"github.com/nbsatlas/nbsharvest"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is specified.
const DefaultModel = "gemini-2.5-flash"

// Ensure Extractor implements nbsharvest.FieldExtractor at compile time.
var _ nbsharvest.FieldExtractor = (*Extractor)(nil)

// Extractor implements nbsharvest.FieldExtractor using Google Gemini.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a new Extractor. An empty model falls back to
// DefaultModel.
func NewExtractor(client *genai.Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// ExtractFields sends the prompt and parses the reply as a JSON object.
func (e *Extractor) ExtractFields(ctx context.Context, prompt string) (map[string]any, error) {
	if prompt == "" {
		return nil, nbsharvest.Errorf(nbsharvest.EINVALID, "prompt required")
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, nbsharvest.Errorf(nbsharvest.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return nil, nbsharvest.Errorf(nbsharvest.EINTERNAL, "gemini returned nil result")
	}

	return nbsharvest.DecodeFields(result.Text())
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
// Temperature zero and a JSON response type keep replies reproducible
// enough to feed a dataset.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: nbsharvest.SystemPrompt}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
