package nbsharvest

import (
	"context"
	"encoding/json"
	"strings"
)

// SystemPrompt is the system instruction shared by all FieldExtractor
// implementations. Extraction feeds a dataset, so the instruction pins the
// model to explicitly stated information only.
const SystemPrompt = "You are a precise data extraction assistant. Extract only explicitly stated information and return unknown for missing data."

// FieldExtractor asks a text-generation service to extract structured
// fields from an extraction prompt.
type FieldExtractor interface {
	// ExtractFields sends the prompt and parses the reply as a JSON
	// object. Transport failures, non-JSON replies and replies without a
	// top-level object all surface as errors; callers treat any error as
	// a per-file skip, never as fatal to a run.
	ExtractFields(ctx context.Context, prompt string) (map[string]any, error)
}

// DecodeFields parses an LLM reply as a JSON object. Models routinely wrap
// JSON in markdown code fences even when asked not to, so fences are
// stripped before decoding. A reply whose top level is not an object is
// rejected with EINTERNAL.
func DecodeFields(reply string) (map[string]any, error) {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return nil, Errorf(EINTERNAL, "reply is not a JSON object: %v", err)
	}
	if fields == nil {
		return nil, Errorf(EINTERNAL, "reply is JSON null, expected an object")
	}
	return fields, nil
}
