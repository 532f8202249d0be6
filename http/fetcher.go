package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/larder"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements larder.Fetcher at compile time.
var _ larder.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages directly with browser-like headers.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client *http.Client
}

// Option configures a Fetcher, ProxyFetcher or Downloader.
type Option func(*options)

type options struct {
	timeout time.Duration
	client  *http.Client
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithClient uses client instead of a new http.Client. The client's
// timeout is replaced by the configured one.
func WithClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

func newClient(defaultTimeout time.Duration, opts []Option) *http.Client {
	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	client := &http.Client{}
	if o.client != nil {
		c := *o.client
		client = &c
	}
	client.Timeout = o.timeout
	return client
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	return &Fetcher{client: newClient(DefaultFetchTimeout, opts)}
}

// Fetch retrieves the page at url, following redirects. The returned page
// carries the final URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*larder.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, larder.Errorf(larder.EINVALID, "invalid URL %q: %v", url, err)
	}
	setBrowserHeaders(req, AcceptHTML)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &larder.Page{
		URL:  resp.Request.URL.String(),
		HTML: string(body),
	}, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
