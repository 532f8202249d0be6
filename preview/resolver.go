package preview

import (
	"context"
	"net/url"

	"github.com/fwojciec/larder"
)

// Ensure PageResolver implements larder.ImageResolver at compile time.
var _ larder.ImageResolver = (*PageResolver)(nil)

// PageResolver fetches a source page and reads its preview image from
// meta tags.
type PageResolver struct {
	Fetcher larder.Fetcher

	// Limiter, when set, is waited on before each page fetch.
	Limiter larder.DomainLimiter
}

// NewPageResolver creates a new PageResolver.
func NewPageResolver(fetcher larder.Fetcher, limiter larder.DomainLimiter) *PageResolver {
	return &PageResolver{Fetcher: fetcher, Limiter: limiter}
}

// ResolveImage returns the page's preview image with the final page URL as
// referer, or nil when the page declares none.
func (r *PageResolver) ResolveImage(ctx context.Context, sourceURL string) (*larder.ImageCandidate, error) {
	if !larder.IsRemoteURL(sourceURL) {
		return nil, nil
	}
	if r.Limiter != nil {
		u, _ := url.Parse(sourceURL)
		if err := r.Limiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	page, err := r.Fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	finalURL := page.URL
	if finalURL == "" {
		finalURL = sourceURL
	}
	image := FindImage(page.HTML, finalURL)
	if image == "" {
		return nil, nil
	}
	return &larder.ImageCandidate{
		URL:     image,
		Referer: finalURL,
		Label:   "preview",
	}, nil
}
