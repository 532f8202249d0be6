package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/larder"
)

// Ensure LoggingDownloader implements larder.ImageDownloader.
var _ larder.ImageDownloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps an ImageDownloader with debug logging.
type LoggingDownloader struct {
	next   larder.ImageDownloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next larder.ImageDownloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the transfer.
func (d *LoggingDownloader) Download(ctx context.Context, url, referer string) (img *larder.Image, err error) {
	defer func(begin time.Time) {
		var n int
		var contentType string
		if img != nil {
			n, contentType = len(img.Data), img.ContentType
		}
		d.logger.Info("download",
			"url", url,
			"referer", referer,
			"bytes", n,
			"content_type", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url, referer)
}
