// Package readability provides a main-content text extractor built on
// go-readability, the Mozilla Readability port. Compared to trafilatura it
// is more permissive about what counts as content, which suits catalog
// pages whose case-study body lives in short scattered sections.
package readability

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/nbsatlas/nbsharvest"
)

// Ensure Extractor implements nbsharvest.TextExtractor at compile time.
var _ nbsharvest.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the whitespace-normalized main-content text of
// rawHTML. Input that readability cannot make sense of yields an empty
// string; callers treat too little text as a skip.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", nil
	}

	return strings.Join(strings.Fields(article.TextContent), " "), nil
}
