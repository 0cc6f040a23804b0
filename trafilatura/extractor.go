// Package trafilatura provides a main-content text extractor built on
// go-trafilatura. It drops page boilerplate (navigation, footers, cookie
// banners) that catalog pages carry around the case-study body, at the
// cost of occasionally discarding sparse but relevant fragments.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/nbsatlas/nbsharvest"
)

// Ensure Extractor implements nbsharvest.TextExtractor at compile time.
var _ nbsharvest.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the whitespace-normalized main-content text of
// rawHTML. Input that trafilatura cannot make sense of yields an empty
// string; callers treat too little text as a skip.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", nil
	}

	return strings.Join(strings.Fields(result.ContentText), " "), nil
}
