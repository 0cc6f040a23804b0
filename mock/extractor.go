package mock

import (
	"context"

	"github.com/nbsatlas/nbsharvest"
)

var _ nbsharvest.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of nbsharvest.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}

var _ nbsharvest.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor is a mock implementation of nbsharvest.FieldExtractor.
type FieldExtractor struct {
	ExtractFieldsFn func(ctx context.Context, prompt string) (map[string]any, error)
}

func (e *FieldExtractor) ExtractFields(ctx context.Context, prompt string) (map[string]any, error) {
	return e.ExtractFieldsFn(ctx, prompt)
}
