package larder

import "context"

// AcceptedImageExtensions lists the file extensions a cached image may have.
var AcceptedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"}

// ImageCandidate is a remote image that may represent a recipe.
type ImageCandidate struct {
	URL string

	// Referer is sent with the download; some hosts reject hot-linked
	// requests without one.
	Referer string

	// Label names the strategy that produced the candidate, for logs.
	Label string
}

// ImageResolver finds a preview image for a recipe's source page.
type ImageResolver interface {
	// ResolveImage returns the preview image for sourceURL.
	// Returns (nil, nil) when the source has no usable image.
	ResolveImage(ctx context.Context, sourceURL string) (*ImageCandidate, error)
}

// Image is a downloaded image.
type Image struct {
	Data        []byte
	ContentType string
}

// ImageDownloader retrieves image bytes.
type ImageDownloader interface {
	// Download fetches url, sending referer when it is not empty.
	Download(ctx context.Context, url, referer string) (*Image, error)
}

// ImageStore keeps cached images on disk under slug-based names.
type ImageStore interface {
	// Path returns the file path for slug with extension ext.
	Path(slug, ext string) string

	// Find returns the path of an existing image for slug under any
	// accepted extension.
	Find(slug string) (path string, ok bool)

	// Save writes data as slug+ext. Written is false when an identical
	// file was already present.
	Save(slug, ext string, data []byte) (path string, written bool, err error)

	// PublicPath maps a file path to its site-root-relative URL path.
	// Returns "" when the path lies outside the public root.
	PublicPath(path string) string

	// LocalPath maps a site-root-relative URL path back to a file path.
	// Returns "" when it cannot be mapped.
	LocalPath(publicPath string) string
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
