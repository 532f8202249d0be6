package prefill_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/mock"
	"github.com/fwojciec/larder/prefill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type atomicCounter struct{ atomic.Int32 }

func (c *atomicCounter) fetcher() *mock.Fetcher { return countingFetcher(&c.Int32) }

func TestSession_SetSourceURL(t *testing.T) {
	t.Parallel()

	soup := &larder.RecipeExtract{
		Title:       "Soup",
		Ingredients: []string{"water", "salt"},
		Steps:       []string{"Boil."},
	}

	t.Run("fills empty draft fields", func(t *testing.T) {
		t.Parallel()

		var calls atomicCounter
		s := prefill.NewSession(prefill.NewPrefiller(calls.fetcher(), returning(soup, nil)))

		u := <-s.SetSourceURL(context.Background(), "https://example.com/soup")

		require.NoError(t, u.Err)
		assert.False(t, u.Stale)
		assert.Equal(t, []string{larder.DraftTitle, larder.DraftIngredients, larder.DraftSteps}, u.Filled)
		d := s.Draft()
		assert.Equal(t, "https://example.com/soup", d.SourceURL)
		assert.Equal(t, "Soup", d.Title)
		assert.Equal(t, []string{"water", "salt"}, d.Ingredients)
	})

	t.Run("keeps fields the user typed", func(t *testing.T) {
		t.Parallel()

		var calls atomicCounter
		s := prefill.NewSession(prefill.NewPrefiller(calls.fetcher(), returning(soup, nil)))
		s.Edit(func(d *larder.Draft) { d.Title = "Grandma's soup" })

		u := <-s.SetSourceURL(context.Background(), "https://example.com/soup")

		assert.Equal(t, []string{larder.DraftIngredients, larder.DraftSteps}, u.Filled)
		assert.Equal(t, "Grandma's soup", s.Draft().Title)
	})

	t.Run("looks up each distinct value once", func(t *testing.T) {
		t.Parallel()

		var calls atomicCounter
		s := prefill.NewSession(prefill.NewPrefiller(calls.fetcher(), returning(soup, nil)))

		<-s.SetSourceURL(context.Background(), "https://example.com/soup")
		_, open := <-s.SetSourceURL(context.Background(), "https://example.com/soup/?ref=share")

		assert.False(t, open)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("retries a value whose lookup failed", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*larder.Page, error) {
				if calls.Add(1) == 1 {
					return nil, errors.New("connection reset")
				}
				return &larder.Page{URL: url}, nil
			},
		}
		s := prefill.NewSession(prefill.NewPrefiller(fetcher, returning(soup, nil)))

		u := <-s.SetSourceURL(context.Background(), "https://example.com/soup")
		require.Error(t, u.Err)

		u, open := <-s.SetSourceURL(context.Background(), "https://example.com/soup")

		require.True(t, open)
		require.NoError(t, u.Err)
		assert.Equal(t, "Soup", s.Draft().Title)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("ignores values that are not remote URLs", func(t *testing.T) {
		t.Parallel()

		var calls atomicCounter
		s := prefill.NewSession(prefill.NewPrefiller(calls.fetcher(), returning(soup, nil)))

		_, open := <-s.SetSourceURL(context.Background(), "not yet a url")

		assert.False(t, open)
		assert.Zero(t, calls.Load())
		assert.Equal(t, "not yet a url", s.Draft().SourceURL)
	})

	t.Run("discards results for a superseded value", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*larder.Page, error) {
				if url == "https://example.com/old" {
					close(started)
					<-ctx.Done()
					return nil, ctx.Err()
				}
				return &larder.Page{URL: url}, nil
			},
		}
		extractor := &mock.RecipeExtractor{
			ExtractRecipeFn: func(_ context.Context, page *larder.Page) (*larder.RecipeExtract, error) {
				return &larder.RecipeExtract{Title: page.URL}, nil
			},
		}
		s := prefill.NewSession(prefill.NewPrefiller(fetcher, extractor))

		old := s.SetSourceURL(context.Background(), "https://example.com/old")
		<-started
		current := <-s.SetSourceURL(context.Background(), "https://example.com/new")
		stale := <-old

		assert.True(t, stale.Stale)
		assert.Empty(t, stale.Filled)
		require.NoError(t, current.Err)
		assert.Equal(t, "https://example.com/new", s.Draft().Title)
	})
}
