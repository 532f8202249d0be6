package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/larder"
)

// DefaultProxyOrigin is the text-extraction proxy used for prefill fetches.
// The target URL is appended to it verbatim.
const DefaultProxyOrigin = "https://r.jina.ai/"

// Ensure ProxyFetcher implements larder.Fetcher at compile time.
var _ larder.Fetcher = (*ProxyFetcher)(nil)

// ProxyFetcher retrieves pages through a text-extraction proxy, which
// sidesteps cross-origin and bot restrictions of the source site.
type ProxyFetcher struct {
	client *http.Client
	origin string
}

// NewProxyFetcher creates a ProxyFetcher for origin. An empty origin uses
// DefaultProxyOrigin.
func NewProxyFetcher(origin string, opts ...Option) *ProxyFetcher {
	if origin == "" {
		origin = DefaultProxyOrigin
	}
	client := newClient(DefaultFetchTimeout, opts)
	return &ProxyFetcher{client: client, origin: origin}
}

// Fetch retrieves url through the proxy. The page URL is the target URL,
// so relative links resolve against the source site.
func (f *ProxyFetcher) Fetch(ctx context.Context, url string) (*larder.Page, error) {
	target := strings.TrimSpace(url)
	if !larder.IsRemoteURL(target) {
		return nil, larder.Errorf(larder.EINVALID, "invalid URL %q", url)
	}

	proxied := f.origin + target
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, proxied, nil)
	if err != nil {
		return nil, larder.Errorf(larder.EINVALID, "invalid proxy URL %q: %v", proxied, err)
	}
	req.Header.Set("Accept", AcceptHTML)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, proxied); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &larder.Page{URL: target, HTML: string(body)}, nil
}

// Close is a no-op.
func (f *ProxyFetcher) Close() error {
	return nil
}
