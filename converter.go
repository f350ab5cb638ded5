package mailpress

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. The input should
	// be clean HTML (e.g., rendered post content), not a raw email
	// body. Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}
