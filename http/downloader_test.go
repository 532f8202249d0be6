package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/larder"
	larderhttp "github.com/fwojciec/larder/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	t.Run("returns bytes and content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, larderhttp.AcceptImage, r.Header.Get("Accept"))
			assert.Equal(t, "https://example.com/recipe", r.Header.Get("Referer"))
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("\x89PNG"))
		}))
		defer server.Close()

		img, err := larderhttp.NewDownloader().Download(context.Background(), server.URL+"/a.png", "https://example.com/recipe")

		require.NoError(t, err)
		assert.Equal(t, []byte("\x89PNG"), img.Data)
		assert.Equal(t, "image/png", img.ContentType)
	})

	t.Run("omits an empty referer", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := r.Header["Referer"]
			assert.False(t, ok)
			_, _ = w.Write([]byte("x"))
		}))
		defer server.Close()

		_, err := larderhttp.NewDownloader().Download(context.Background(), server.URL, "")
		require.NoError(t, err)
	})

	t.Run("rejects images over the size cap", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(bytes.Repeat([]byte("a"), larderhttp.MaxImageBytes+1))
		}))
		defer server.Close()

		_, err := larderhttp.NewDownloader().Download(context.Background(), server.URL, "")

		require.Error(t, err)
		assert.Equal(t, larder.EINVALID, larder.ErrorCode(err))
	})

	t.Run("returns a status error for hot-link refusals", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := larderhttp.NewDownloader().Download(context.Background(), server.URL, "")

		var statusErr *larderhttp.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	})
}
