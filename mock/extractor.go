package mock

import (
	"context"

	"github.com/fwojciec/larder"
)

var (
	_ larder.RecipeExtractor  = (*RecipeExtractor)(nil)
	_ larder.ArticleExtractor = (*ArticleExtractor)(nil)
)

// RecipeExtractor is a mock implementation of larder.RecipeExtractor.
type RecipeExtractor struct {
	ExtractRecipeFn func(ctx context.Context, page *larder.Page) (*larder.RecipeExtract, error)
}

func (e *RecipeExtractor) ExtractRecipe(ctx context.Context, page *larder.Page) (*larder.RecipeExtract, error) {
	return e.ExtractRecipeFn(ctx, page)
}

// ArticleExtractor is a mock implementation of larder.ArticleExtractor.
type ArticleExtractor struct {
	ExtractFn func(html string) (*larder.Article, error)
}

func (e *ArticleExtractor) Extract(html string) (*larder.Article, error) {
	return e.ExtractFn(html)
}
