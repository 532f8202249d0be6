// Package imagecache downloads recipe images into a local directory and
// points each recipe's imageUrl at the cached copy.
package imagecache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/fwojciec/larder"
)

// LabelFallback labels a recipe's own imageUrl when resolvers ran first.
const LabelFallback = "fallback imageUrl"

// Report summarises a Run.
type Report struct {
	// Processed counts recipes a candidate could be looked up for.
	Processed int

	// Skipped counts recipes left alone: nothing to work from, or a
	// cached local image already in place.
	Skipped int

	// Reused counts recipes pointed at an image already on disk.
	Reused int

	// Downloaded counts images fetched and stored.
	Downloaded int

	// Failed counts processed recipes for which no candidate succeeded.
	Failed int

	// Changed counts recipes whose imageUrl was rewritten.
	Changed int
}

// Cacher caches an image for every recipe of a collection.
//
// Candidates are tried in order: each resolver applied to the recipe's
// source URL, then the recipe's own remote imageUrl. The first candidate
// that downloads and saves wins.
type Cacher struct {
	Resolvers  []larder.ImageResolver
	Downloader larder.ImageDownloader
	Store      larder.ImageStore

	// Limiter, if set, is waited on per host before each download.
	Limiter larder.DomainLimiter

	Logger *slog.Logger

	// Out receives one progress line per download.
	Out io.Writer

	// SkipExisting leaves recipes that already have a cached image
	// without touching the network.
	SkipExisting bool

	// DryRun reports planned downloads without downloading or writing.
	DryRun bool
}

// Run processes the recipes of c sequentially, rewriting imageUrl in place.
// Per-recipe failures are logged; only context cancellation stops the run.
func (c *Cacher) Run(ctx context.Context, coll *larder.Collection) (Report, error) {
	var report Report
	slugs := larder.NewSlugAllocator()

	for _, r := range coll.Recipes {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		sourceURL := strings.TrimSpace(r.SourceURL)
		imageURL := strings.TrimSpace(r.ImageURL)
		if !c.eligible(sourceURL, imageURL) {
			report.Skipped++
			continue
		}
		report.Processed++

		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = "recipe"
		}
		slug := slugs.Allocate(title)

		if c.SkipExisting {
			if c.cachedLocally(imageURL) {
				report.Skipped++
				continue
			}
			if path, ok := c.Store.Find(slug); ok {
				report.Reused++
				c.point(r, path, &report)
				continue
			}
		}

		ok, err := c.cache(ctx, r, slug, sourceURL, imageURL, &report)
		if err != nil {
			return report, err
		}
		if !ok {
			report.Failed++
		}
	}
	return report, nil
}

func (c *Cacher) eligible(sourceURL, imageURL string) bool {
	if len(c.Resolvers) > 0 && sourceURL != "" {
		return true
	}
	return larder.IsRemoteURL(imageURL)
}

func (c *Cacher) cachedLocally(imageURL string) bool {
	if !strings.HasPrefix(imageURL, "/") {
		return false
	}
	path := c.Store.LocalPath(imageURL)
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// cache tries each candidate for r in turn. It reports whether one
// succeeded; the error is non-nil only when ctx is done.
func (c *Cacher) cache(ctx context.Context, r *larder.Recipe, slug, sourceURL, imageURL string, report *Report) (bool, error) {
	logger := c.logger().With("recipe", slug)
	attempted := false

	if sourceURL != "" {
		for _, resolver := range c.Resolvers {
			cand, err := resolver.ResolveImage(ctx, sourceURL)
			if err != nil {
				if ctx.Err() != nil {
					return false, ctx.Err()
				}
				logger.Warn("failed to resolve image", "source", sourceURL, "err", err)
				continue
			}
			if cand == nil {
				continue
			}
			attempted = true
			ok, err := c.try(ctx, logger, r, slug, cand, report)
			if ok || err != nil {
				return ok, err
			}
		}
	}

	if larder.IsRemoteURL(imageURL) {
		cand := &larder.ImageCandidate{URL: imageURL, Referer: sourceURL}
		if len(c.Resolvers) > 0 {
			cand.Label = LabelFallback
		}
		attempted = true
		ok, err := c.try(ctx, logger, r, slug, cand, report)
		if ok || err != nil {
			return ok, err
		}
	}

	if attempted {
		logger.Warn("no image cached", "source", sourceURL)
	} else {
		logger.Debug("no image candidate", "source", sourceURL)
	}
	return false, nil
}

func (c *Cacher) try(ctx context.Context, logger *slog.Logger, r *larder.Recipe, slug string, cand *larder.ImageCandidate, report *Report) (bool, error) {
	if c.DryRun {
		ext := URLExtension(cand.URL)
		if ext == "" {
			ext = DefaultExtension
		}
		c.printf("[dry-run] Would download %s -> %s\n", describe(cand), c.Store.Path(slug, ext))
		return true, nil
	}

	if c.Limiter != nil {
		if u, err := url.Parse(cand.URL); err == nil {
			if err := c.Limiter.Wait(ctx, u.Hostname()); err != nil {
				return false, err
			}
		}
	}

	img, err := c.Downloader.Download(ctx, cand.URL, cand.Referer)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		logger.Warn("failed to download", "url", cand.URL, "label", cand.Label, "err", err)
		return false, nil
	}

	ext := Extension(cand.URL, img.ContentType, img.Data)
	path, _, err := c.Store.Save(slug, ext, img.Data)
	if err != nil {
		logger.Warn("failed to save image", "url", cand.URL, "err", err)
		return false, nil
	}
	report.Downloaded++
	c.printf("Downloaded %s -> %s\n", describe(cand), path)
	c.point(r, path, report)
	return true, nil
}

// point rewrites imageUrl to the public path of the cached file.
// Dry runs never modify recipes.
func (c *Cacher) point(r *larder.Recipe, path string, report *Report) {
	if c.DryRun {
		return
	}
	public := c.Store.PublicPath(path)
	if public == "" {
		c.logger().Warn("cached image is outside the public directory, imageUrl unchanged", "path", path)
		return
	}
	if r.ImageURL != public {
		r.ImageURL = public
		report.Changed++
	}
}

func (c *Cacher) printf(format string, args ...any) {
	if c.Out == nil {
		return
	}
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Cacher) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func describe(cand *larder.ImageCandidate) string {
	if cand.Label == "" {
		return cand.URL
	}
	return cand.URL + " (" + cand.Label + ")"
}
