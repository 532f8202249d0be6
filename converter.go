package larder

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., from an ArticleExtractor) into
	// Markdown.
	Convert(html string) (string, error)
}
