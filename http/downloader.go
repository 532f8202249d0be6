package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/larder"
)

// DefaultDownloadTimeout bounds each image download.
const DefaultDownloadTimeout = 30 * time.Second

// MaxImageBytes caps the size of a downloaded image.
const MaxImageBytes = 25 << 20

// Ensure Downloader implements larder.ImageDownloader at compile time.
var _ larder.ImageDownloader = (*Downloader)(nil)

// Downloader retrieves image bytes with browser-like headers.
type Downloader struct {
	client   *http.Client
	maxBytes int64
}

// NewDownloader creates a new Downloader.
func NewDownloader(opts ...Option) *Downloader {
	client := newClient(DefaultDownloadTimeout, opts)
	return &Downloader{client: client, maxBytes: MaxImageBytes}
}

// Download fetches url, sending referer when it is not empty.
func (d *Downloader) Download(ctx context.Context, url, referer string) (*larder.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, larder.Errorf(larder.EINVALID, "invalid URL %q: %v", url, err)
	}
	setBrowserHeaders(req, AcceptImage)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > d.maxBytes {
		return nil, larder.Errorf(larder.EINVALID, "image at %s exceeds %d bytes", url, d.maxBytes)
	}

	return &larder.Image{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
