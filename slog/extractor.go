package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/larder"
)

// Ensure LoggingRecipeExtractor implements larder.RecipeExtractor.
var _ larder.RecipeExtractor = (*LoggingRecipeExtractor)(nil)

// LoggingRecipeExtractor wraps a RecipeExtractor with debug logging.
type LoggingRecipeExtractor struct {
	next   larder.RecipeExtractor
	name   string
	logger *slog.Logger
}

// NewLoggingRecipeExtractor creates a new LoggingRecipeExtractor. Name
// identifies the strategy in the log.
func NewLoggingRecipeExtractor(next larder.RecipeExtractor, name string, logger *slog.Logger) *LoggingRecipeExtractor {
	return &LoggingRecipeExtractor{next: next, name: name, logger: logger}
}

// ExtractRecipe delegates to the wrapped extractor and logs what it found.
func (e *LoggingRecipeExtractor) ExtractRecipe(ctx context.Context, page *larder.Page) (r *larder.RecipeExtract, err error) {
	defer func(begin time.Time) {
		var title string
		var ingredients, steps int
		if r != nil {
			title, ingredients, steps = r.Title, len(r.Ingredients), len(r.Steps)
		}
		e.logger.Info("extract recipe",
			"strategy", e.name,
			"url", page.URL,
			"title", title,
			"ingredients", ingredients,
			"steps", steps,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractRecipe(ctx, page)
}
