package preview_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/mock"
	"github.com/fwojciec/larder/preview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindImage(t *testing.T) {
	t.Parallel()

	t.Run("reads og:image", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><meta property="og:image" content="https://img.example/a.png"></head></html>`

		assert.Equal(t, "https://img.example/a.png", preview.FindImage(page, "https://example.com/recipe"))
	})

	t.Run("prefers candidates in priority order", func(t *testing.T) {
		t.Parallel()

		page := `<meta name="twitter:image" content="https://img.example/twitter.png">
<meta property="og:image" content="https://img.example/og.png">
<meta property="og:image:secure_url" content="https://img.example/secure.png">`

		assert.Equal(t, "https://img.example/secure.png", preview.FindImage(page, "https://example.com"))
	})

	t.Run("accepts single quotes and attributes in any order", func(t *testing.T) {
		t.Parallel()

		page := `<META content='https://img.example/b.jpg' PROPERTY='og:image' />`

		assert.Equal(t, "https://img.example/b.jpg", preview.FindImage(page, "https://example.com"))
	})

	t.Run("decodes entities and resolves relative URLs", func(t *testing.T) {
		t.Parallel()

		page := `<meta property="og:image" content="/img/a.png?w=800&amp;h=600">`

		assert.Equal(t, "https://example.com/img/a.png?w=800&h=600", preview.FindImage(page, "https://example.com/recipes/soup"))
	})

	t.Run("falls back to link rel image_src", func(t *testing.T) {
		t.Parallel()

		page := `<link href="thumb.webp" rel="image_src">`

		assert.Equal(t, "https://example.com/recipes/thumb.webp", preview.FindImage(page, "https://example.com/recipes/soup"))
	})

	t.Run("skips a candidate without content", func(t *testing.T) {
		t.Parallel()

		page := `<meta property="og:image" content=""><meta name="thumbnail" content="https://img.example/t.gif">`

		assert.Equal(t, "https://img.example/t.gif", preview.FindImage(page, "https://example.com"))
	})

	t.Run("ignores tags beyond the scan window", func(t *testing.T) {
		t.Parallel()

		page := strings.Repeat(" ", preview.MaxScanBytes) + `<meta property="og:image" content="https://img.example/late.png">`

		assert.Empty(t, preview.FindImage(page, "https://example.com"))
	})

	t.Run("returns empty without hints", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, preview.FindImage(`<html><body><img src="/a.png"></body></html>`, "https://example.com"))
	})
}

func TestPageResolver_ResolveImage(t *testing.T) {
	t.Parallel()

	t.Run("uses the final page URL as base and referer", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*larder.Page, error) {
				assert.Equal(t, "https://example.com/r/1", url)
				return &larder.Page{
					URL:  "https://www.example.com/recipes/soup/",
					HTML: `<meta property="og:image" content="hero.png">`,
				}, nil
			},
		}
		var waited []string
		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				waited = append(waited, domain)
				return nil
			},
		}

		c, err := preview.NewPageResolver(fetcher, limiter).ResolveImage(context.Background(), "https://example.com/r/1")

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "https://www.example.com/recipes/soup/hero.png", c.URL)
		assert.Equal(t, "https://www.example.com/recipes/soup/", c.Referer)
		assert.Equal(t, "preview", c.Label)
		assert.Equal(t, []string{"example.com"}, waited)
	})

	t.Run("returns nil when the page declares no image", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*larder.Page, error) {
				return &larder.Page{URL: url, HTML: "<html></html>"}, nil
			},
		}

		c, err := preview.NewPageResolver(fetcher, nil).ResolveImage(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("returns fetch errors", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*larder.Page, error) {
				return nil, errors.New("connection refused")
			},
		}

		_, err := preview.NewPageResolver(fetcher, nil).ResolveImage(context.Background(), "https://example.com")

		require.Error(t, err)
	})

	t.Run("ignores sources that are not remote URLs", func(t *testing.T) {
		t.Parallel()

		c, err := preview.NewPageResolver(&mock.Fetcher{}, nil).ResolveImage(context.Background(), "notes.txt")

		require.NoError(t, err)
		assert.Nil(t, c)
	})
}
