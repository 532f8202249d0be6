package prefill

import (
	"context"
	"strings"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/caption"
)

// Ensure ArticleExtractor implements larder.RecipeExtractor at compile time.
var _ larder.RecipeExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor isolates a page's main content, converts it to text
// lines and reads ingredients and steps from them with the caption
// heuristics. It serves pages whose recipe is written as prose without
// structured data.
type ArticleExtractor struct {
	Articles  larder.ArticleExtractor
	Converter larder.Converter

	// Lines splits converted Markdown into plain text lines.
	// Defaults to splitting on newlines.
	Lines func(markdown string) []string
}

// ExtractRecipe returns nil when the article yields neither ingredients
// nor steps.
func (a *ArticleExtractor) ExtractRecipe(ctx context.Context, page *larder.Page) (*larder.RecipeExtract, error) {
	article, err := a.Articles.Extract(page.HTML)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.ContentHTML) == "" {
		return nil, nil
	}

	markdown, err := a.Converter.Convert(article.ContentHTML)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(markdown, "\n")
	if a.Lines != nil {
		lines = a.Lines(markdown)
	}

	ingredients, steps := caption.Parse(strings.Join(lines, "\n"))
	if len(ingredients) == 0 && len(steps) == 0 {
		return nil, nil
	}
	return &larder.RecipeExtract{
		Title:       strings.TrimSpace(article.Title),
		Ingredients: ingredients,
		Steps:       steps,
	}, nil
}
