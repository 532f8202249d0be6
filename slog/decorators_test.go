package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/mock"
	larderslog "github.com/fwojciec/larder/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDownloader_Download(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.ImageDownloader{
		DownloadFn: func(ctx context.Context, url, referer string) (*larder.Image, error) {
			return &larder.Image{Data: []byte("12345"), ContentType: "image/png"}, nil
		},
	}

	d := larderslog.NewLoggingDownloader(inner, logger)
	img, err := d.Download(context.Background(), "https://cdn.example.com/a.png", "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	output := buf.String()
	assert.Contains(t, output, "download")
	assert.Contains(t, output, "referer=https://example.com/")
	assert.Contains(t, output, "bytes=5")
	assert.Contains(t, output, "content_type=image/png")
}

func TestLoggingImageResolver_ResolveImage(t *testing.T) {
	t.Parallel()

	t.Run("logs the resolved image", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ImageResolver{
			ResolveImageFn: func(ctx context.Context, sourceURL string) (*larder.ImageCandidate, error) {
				return &larder.ImageCandidate{URL: "https://cdn.example.com/og.jpg"}, nil
			},
		}

		r := larderslog.NewLoggingImageResolver(inner, "preview", logger)
		cand, err := r.ResolveImage(context.Background(), "https://example.com/soup")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/og.jpg", cand.URL)
		output := buf.String()
		assert.Contains(t, output, "resolver=preview")
		assert.Contains(t, output, "image=https://cdn.example.com/og.jpg")
	})

	t.Run("logs a miss", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ImageResolver{
			ResolveImageFn: func(ctx context.Context, sourceURL string) (*larder.ImageCandidate, error) {
				return nil, errors.New("HTTP 403")
			},
		}

		r := larderslog.NewLoggingImageResolver(inner, "oembed", logger)
		cand, err := r.ResolveImage(context.Background(), "https://www.instagram.com/p/abc/")

		require.Error(t, err)
		assert.Nil(t, cand)
		assert.Contains(t, buf.String(), "image=\"\"")
		assert.Contains(t, buf.String(), "err=\"HTTP 403\"")
	})
}

func TestLoggingRecipeExtractor_ExtractRecipe(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.RecipeExtractor{
		ExtractRecipeFn: func(ctx context.Context, page *larder.Page) (*larder.RecipeExtract, error) {
			return &larder.RecipeExtract{Title: "Soup", Ingredients: []string{"water", "salt"}}, nil
		},
	}

	e := larderslog.NewLoggingRecipeExtractor(inner, "jsonld", logger)
	r, err := e.ExtractRecipe(context.Background(), &larder.Page{URL: "https://example.com/soup"})

	require.NoError(t, err)
	assert.Equal(t, "Soup", r.Title)
	output := buf.String()
	assert.Contains(t, output, "strategy=jsonld")
	assert.Contains(t, output, "ingredients=2")
	assert.Contains(t, output, "steps=0")
}
