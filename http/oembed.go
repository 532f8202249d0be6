package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/larder"
)

// DefaultOEmbedEndpoint is Instagram's public oEmbed endpoint. The
// canonical post URL is appended query-escaped.
const DefaultOEmbedEndpoint = "https://api.instagram.com/oembed/?url="

// Ensure OEmbedResolver implements larder.ImageResolver at compile time.
var _ larder.ImageResolver = (*OEmbedResolver)(nil)

// OEmbedResolver looks up post thumbnails for Instagram sources.
type OEmbedResolver struct {
	client   *http.Client
	endpoint string
}

// NewOEmbedResolver creates an OEmbedResolver for endpoint. An empty
// endpoint uses DefaultOEmbedEndpoint.
func NewOEmbedResolver(endpoint string, opts ...Option) *OEmbedResolver {
	if endpoint == "" {
		endpoint = DefaultOEmbedEndpoint
	}
	client := newClient(DefaultFetchTimeout, opts)
	return &OEmbedResolver{client: client, endpoint: endpoint}
}

// ResolveImage returns the thumbnail of an Instagram post. Other sources,
// and responses without a thumbnail, yield nil.
func (r *OEmbedResolver) ResolveImage(ctx context.Context, sourceURL string) (*larder.ImageCandidate, error) {
	if !larder.IsInstagramURL(sourceURL) {
		return nil, nil
	}
	post := larder.CanonicalPostURL(sourceURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+url.QueryEscape(post), nil)
	if err != nil {
		return nil, larder.Errorf(larder.EINVALID, "invalid oEmbed endpoint %q: %v", r.endpoint, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, req.URL.String()); err != nil {
		return nil, err
	}

	var payload struct {
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return nil, larder.Errorf(larder.EINVALID, "decoding oEmbed response: %v", err)
	}

	thumb := strings.TrimSpace(payload.ThumbnailURL)
	if thumb == "" {
		return nil, nil
	}
	return &larder.ImageCandidate{
		URL:     thumb,
		Referer: post,
		Label:   "oembed",
	}, nil
}
