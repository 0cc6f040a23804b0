package nbsharvest

import (
	"fmt"
	"strings"
)

// maxSummarySentences bounds the summary length; longer summaries are
// truncated to the first sentences and rejoined.
const maxSummarySentences = 4

// ValidateEntry maps an arbitrary field mapping, typically a decoded LLM
// reply, onto the canonical record shape. It is total: missing fields,
// wrong types and out-of-vocabulary values are absorbed into defaults
// ("unknown" for scalars, empty for lists) rather than reported. All
// leniency of the pipeline lives here; everything downstream deals in
// fully-populated records.
func ValidateEntry(entry map[string]any) *Record {
	return &Record{
		Title:                 scalarField(entry["title"]),
		Summary:               summaryField(entry["summary"]),
		Status:                ParseStatus(stringify(entry["status"])),
		LocationName:          scalarField(entry["location_name"]),
		Country:               scalarField(entry["country"]),
		Scale:                 ParseScale(stringify(entry["scale"])),
		SolutionTypes:         listField(entry["solution_types"]),
		ChallengesAddressed:   listField(entry["challenges_addressed"]),
		HealthLinkagesPrimary: listField(entry["health_linkages_primary"]),
		Impacts:               listField(entry["impacts"]),
		Governance:            scalarField(entry["governance"]),
		SourceURL:             scalarField(entry["url_source"]),
		EnvironmentalContext:  ParseEnvContext(stringify(entry["environmental_context"])),
	}
}

// stringify renders any value as a string. nil becomes the empty string so
// downstream defaulting applies.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

// scalarField trims a free-text value, defaulting to "unknown" when empty.
func scalarField(v any) string {
	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return Unknown
	}
	return s
}

// summaryField trims the summary and truncates it to at most four
// sentence-like segments, split on periods and rejoined with ". " plus a
// trailing period.
func summaryField(v any) string {
	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return Unknown
	}

	parts := strings.Split(s, ".")
	if len(parts) <= maxSummarySentences {
		return s
	}

	kept := make([]string, 0, maxSummarySentences)
	for _, part := range parts[:maxSummarySentences] {
		kept = append(kept, strings.TrimSpace(part))
	}
	return strings.Join(kept, ". ") + "."
}

// listField coerces a value into a cleaned list: non-sequence shapes yield
// an empty list; elements are stringified, trimmed and lower-cased, with
// empties and case-insensitive duplicates dropped in first-seen order.
func listField(v any) []string {
	var items []any
	switch seq := v.(type) {
	case []any:
		items = seq
	case []string:
		items = make([]any, len(seq))
		for i, s := range seq {
			items[i] = s
		}
	default:
		return []string{}
	}

	cleaned := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		s := strings.ToLower(strings.TrimSpace(stringify(item)))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		cleaned = append(cleaned, s)
	}
	return cleaned
}
