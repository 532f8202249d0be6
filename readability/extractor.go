// Package readability isolates the main content of recipe pages with
// github.com/go-shiori/go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/larder"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements larder.ArticleExtractor at compile time.
var _ larder.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*larder.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, larder.Errorf(larder.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &larder.Article{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
