package larder

import "context"

// Page is an HTML document retrieved from the web.
type Page struct {
	// URL is the final URL after redirects. Relative links resolve against it.
	URL string

	// HTML is the document body.
	HTML string
}

// Fetcher retrieves HTML pages.
// Implementations may go through a text-extraction proxy, plain HTTP or a
// headless browser.
type Fetcher interface {
	// Fetch retrieves the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)

	// Close releases resources held by the fetcher.
	Close() error
}
