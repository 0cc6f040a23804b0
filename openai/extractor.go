// Package openai provides a FieldExtractor backed by the OpenAI chat
// completions API.
package openai

import (
	"context"

	"github.com/nbsatlas/nbsharvest"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is specified.
const DefaultModel = openai.GPT4o

// Ensure Extractor implements nbsharvest.FieldExtractor at compile time.
var _ nbsharvest.FieldExtractor = (*Extractor)(nil)

// Extractor implements nbsharvest.FieldExtractor using OpenAI.
type Extractor struct {
	client *openai.Client
	model  string
}

// NewExtractor creates a new Extractor. The API key is required; an empty
// model falls back to DefaultModel.
func NewExtractor(apiKey, model string) (*Extractor, error) {
	if apiKey == "" {
		return nil, nbsharvest.Errorf(nbsharvest.EINVALID, "OpenAI API key required")
	}
	return NewExtractorWithClient(openai.NewClient(apiKey), model), nil
}

// NewExtractorWithClient creates an Extractor around an existing client.
// Useful for tests and for callers pointing at OpenAI-compatible servers.
func NewExtractorWithClient(client *openai.Client, model string) *Extractor {
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

	resp, err := e.client.CreateChatCompletion(ctx, BuildRequest(e.model, prompt))
	if err != nil {
		return nil, nbsharvest.Errorf(nbsharvest.EUNAVAILABLE, "openai: %v", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nbsharvest.Errorf(nbsharvest.EINTERNAL, "openai returned no choices")
	}

	return nbsharvest.DecodeFields(resp.Choices[0].Message.Content)
}

// BuildRequest returns the chat completion request for an extraction call.
func BuildRequest(model, prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: nbsharvest.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		// go-openai omits a zero temperature from the request body, which
		// would leave the server default in effect. The smallest nonzero
		// value keeps decoding deterministic.
		Temperature: 1e-8,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}
