package mock

import (
	"context"

	"github.com/fwojciec/larder"
)

var (
	_ larder.ImageResolver   = (*ImageResolver)(nil)
	_ larder.ImageDownloader = (*ImageDownloader)(nil)
	_ larder.ImageStore      = (*ImageStore)(nil)
	_ larder.DomainLimiter   = (*DomainLimiter)(nil)
)

// ImageResolver is a mock implementation of larder.ImageResolver.
type ImageResolver struct {
	ResolveImageFn func(ctx context.Context, sourceURL string) (*larder.ImageCandidate, error)
}

func (r *ImageResolver) ResolveImage(ctx context.Context, sourceURL string) (*larder.ImageCandidate, error) {
	return r.ResolveImageFn(ctx, sourceURL)
}

// ImageDownloader is a mock implementation of larder.ImageDownloader.
type ImageDownloader struct {
	DownloadFn func(ctx context.Context, url, referer string) (*larder.Image, error)
}

func (d *ImageDownloader) Download(ctx context.Context, url, referer string) (*larder.Image, error) {
	return d.DownloadFn(ctx, url, referer)
}

// ImageStore is a mock implementation of larder.ImageStore.
type ImageStore struct {
	PathFn       func(slug, ext string) string
	FindFn       func(slug string) (string, bool)
	SaveFn       func(slug, ext string, data []byte) (string, bool, error)
	PublicPathFn func(path string) string
	LocalPathFn  func(publicPath string) string
}

func (s *ImageStore) Path(slug, ext string) string {
	return s.PathFn(slug, ext)
}

func (s *ImageStore) Find(slug string) (string, bool) {
	return s.FindFn(slug)
}

func (s *ImageStore) Save(slug, ext string, data []byte) (string, bool, error) {
	return s.SaveFn(slug, ext, data)
}

func (s *ImageStore) PublicPath(path string) string {
	return s.PublicPathFn(path)
}

func (s *ImageStore) LocalPath(publicPath string) string {
	return s.LocalPathFn(publicPath)
}

// DomainLimiter is a mock implementation of larder.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
