package nbsharvest

// TextExtractor extracts the visible text of an HTML document.
type TextExtractor interface {
	// ExtractText strips markup, scripts and styles from raw HTML and
	// returns the remaining text, whitespace-normalized with fields
	// joined by single spaces. Malformed input yields an empty string
	// rather than an error; callers treat too little text as a skip.
	ExtractText(html string) (string, error)
}
