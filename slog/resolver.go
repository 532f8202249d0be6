package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/larder"
)

// Ensure LoggingImageResolver implements larder.ImageResolver.
var _ larder.ImageResolver = (*LoggingImageResolver)(nil)

// LoggingImageResolver wraps an ImageResolver with debug logging.
type LoggingImageResolver struct {
	next   larder.ImageResolver
	name   string
	logger *slog.Logger
}

// NewLoggingImageResolver creates a new LoggingImageResolver. Name tells
// resolvers apart in the log.
func NewLoggingImageResolver(next larder.ImageResolver, name string, logger *slog.Logger) *LoggingImageResolver {
	return &LoggingImageResolver{next: next, name: name, logger: logger}
}

// ResolveImage delegates to the wrapped resolver and logs the candidate.
func (r *LoggingImageResolver) ResolveImage(ctx context.Context, sourceURL string) (cand *larder.ImageCandidate, err error) {
	defer func(begin time.Time) {
		var image string
		if cand != nil {
			image = cand.URL
		}
		r.logger.Info("resolve image",
			"resolver", r.name,
			"source", sourceURL,
			"image", image,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ResolveImage(ctx, sourceURL)
}
