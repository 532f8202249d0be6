package larder_test

import (
	"testing"

	"github.com/fwojciec/larder"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeForLookup(t *testing.T) {
	t.Parallel()

	t.Run("ignores query, fragment and trailing slash", func(t *testing.T) {
		t.Parallel()

		a := larder.NormalizeForLookup("https://x.com/p/1/?utm=a#frag")
		b := larder.NormalizeForLookup("https://x.com/p/1")

		assert.Equal(t, b, a)
		assert.Equal(t, "https://x.com/p/1", a)
	})

	t.Run("lowercases scheme and host only", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://x.com/Recipe", larder.NormalizeForLookup("HTTPS://X.com/Recipe/"))
	})

	t.Run("returns trimmed input when not an absolute URL", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "not a url", larder.NormalizeForLookup("  not a url "))
		assert.Equal(t, "http://[::1", larder.NormalizeForLookup("http://[::1"))
	})
}

func TestBuildEmbedURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.instagram.com/reel/abc/", larder.BuildEmbedURL("https://www.instagram.com/reel/abc?igsh=1"))
	assert.Equal(t, "https://example.com/a/", larder.BuildEmbedURL("https://example.com/a/#top"))
	assert.Equal(t, "https://example.com/", larder.BuildEmbedURL("https://example.com"))
	assert.Empty(t, larder.BuildEmbedURL("::bad"))
	assert.Empty(t, larder.BuildEmbedURL("relative/path"))
}

func TestIsInstagramHost(t *testing.T) {
	t.Parallel()

	assert.True(t, larder.IsInstagramHost("m.instagram.com"))
	assert.True(t, larder.IsInstagramHost("WWW.Instagram.com."))
	assert.False(t, larder.IsInstagramHost("example.com"))
	assert.False(t, larder.IsInstagramHost(""))
}

func TestIsInstagramURL(t *testing.T) {
	t.Parallel()

	assert.True(t, larder.IsInstagramURL("https://www.instagram.com/p/abc/"))
	assert.True(t, larder.IsInstagramURL("https://instagram.com/reel/abc"))
	assert.True(t, larder.IsInstagramURL("https://instagr.am/p/abc"))
	assert.False(t, larder.IsInstagramURL("https://notinstagram.com/p/abc"))
	assert.False(t, larder.IsInstagramURL("https://instagram.com.evil.example/p/abc"))
	assert.False(t, larder.IsInstagramURL("not a url"))
}

func TestCanonicalPostURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.instagram.com/reel/C1a2B3/", larder.CanonicalPostURL("https://www.instagram.com/someuser/reel/C1a2B3/?igsh=x"))
	assert.Equal(t, "https://www.instagram.com/p/XYZ/", larder.CanonicalPostURL("https://instagram.com/p/XYZ"))
	assert.Equal(t, "https://www.instagram.com/chef/", larder.CanonicalPostURL("https://www.instagram.com/chef/?hl=en"))
	assert.Equal(t, "https://example.com/a", larder.CanonicalPostURL("https://example.com/a?b=1#c"))
}

func TestIsRemoteURL(t *testing.T) {
	t.Parallel()

	assert.True(t, larder.IsRemoteURL("https://img.example/a.png"))
	assert.True(t, larder.IsRemoteURL("http://img.example/a.png"))
	assert.False(t, larder.IsRemoteURL("/images/recipes/a.png"))
	assert.False(t, larder.IsRemoteURL("data:image/png;base64,AAAA"))
	assert.False(t, larder.IsRemoteURL(""))
}
