package caption

import (
	"context"
	"strings"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/goquery"
)

// Ensure Extractor implements larder.RecipeExtractor at compile time.
var _ larder.RecipeExtractor = (*Extractor)(nil)

// Extractor parses the og:description caption of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractRecipe returns nil when the page has no caption with recipe content.
// The title comes from og:title or the document title.
func (e *Extractor) ExtractRecipe(ctx context.Context, page *larder.Page) (*larder.RecipeExtract, error) {
	doc, err := gq.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, larder.Errorf(larder.EINVALID, "failed to parse HTML: %v", err)
	}

	description := goquery.MetaContent(doc, "og:description")
	if description == "" {
		description = goquery.MetaContent(doc, "description")
	}
	if description == "" {
		return nil, nil
	}

	ingredients, steps := Parse(description)
	if len(ingredients) == 0 && len(steps) == 0 {
		return nil, nil
	}
	return &larder.RecipeExtract{
		Title:       goquery.Title(doc),
		Ingredients: ingredients,
		Steps:       steps,
	}, nil
}
