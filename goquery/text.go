// Package goquery provides an HTML text extractor built on goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nbsatlas/nbsharvest"
	"golang.org/x/net/html"
)

// Ensure TextExtractor implements nbsharvest.TextExtractor at compile time.
var _ nbsharvest.TextExtractor = (*TextExtractor)(nil)

// TextExtractor strips scripts, styles and markup from an HTML document
// and returns the visible text.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText returns the visible text of rawHTML, whitespace-normalized
// with fields joined by single spaces. Malformed or empty input yields an
// empty string; the caller decides whether the result is long enough to
// be worth processing.
func (e *TextExtractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", nil
	}

	doc.Find("script, style, noscript").Remove()

	var sb strings.Builder
	for _, node := range doc.Nodes {
		collectText(node, &sb)
	}

	return strings.Join(strings.Fields(sb.String()), " "), nil
}

// collectText appends the text content of n and its children, separating
// adjacent text nodes with spaces so sibling elements don't run together.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
