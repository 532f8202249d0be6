// Package prefill fills a new recipe from its source page: it fetches the
// page, runs an ordered chain of extraction strategies and memoises the
// results per normalized source URL.
package prefill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/larder"
)

// Ensure Chain implements larder.RecipeExtractor at compile time.
var _ larder.RecipeExtractor = (*Chain)(nil)

// Chain evaluates extraction strategies lazily, in order.
//
// The first result carrying ingredients or steps wins. When no strategy
// finds either, the first title-only result is returned. A winner without
// a title takes the first title any earlier strategy produced.
type Chain struct {
	Extractors []larder.RecipeExtractor

	// Logger receives a warning for every failing strategy.
	Logger *slog.Logger
}

// NewChain creates a Chain over extractors.
func NewChain(logger *slog.Logger, extractors ...larder.RecipeExtractor) *Chain {
	return &Chain{Extractors: extractors, Logger: logger}
}

// ExtractRecipe runs the strategies against page. Strategy errors are
// logged and skipped; only context cancellation is returned.
func (c *Chain) ExtractRecipe(ctx context.Context, page *larder.Page) (*larder.RecipeExtract, error) {
	var titleOnly *larder.RecipeExtract
	var title string
	for _, e := range c.Extractors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r, err := e.ExtractRecipe(ctx, page)
		if err != nil {
			c.logger().Warn("extraction strategy failed",
				"strategy", fmt.Sprintf("%T", e),
				"url", page.URL,
				"err", err,
			)
			continue
		}
		if r == nil {
			continue
		}

		if title == "" {
			title = r.Title
		}
		if r.HasContent() {
			if r.Title == "" {
				won := *r
				won.Title = title
				return &won, nil
			}
			return r, nil
		}
		if titleOnly == nil && r.Title != "" {
			titleOnly = r
		}
	}
	return titleOnly, nil
}

func (c *Chain) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
