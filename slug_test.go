package larder_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/larder"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "symbols collapse to one hyphen", title: "Chicken & Spinach!!", want: "chicken-spinach"},
		{name: "leading and trailing symbols trimmed", title: "  --Best Ever Pancakes--  ", want: "best-ever-pancakes"},
		{name: "digits kept", title: "5 Minute Salsa", want: "5-minute-salsa"},
		{name: "non-ascii letters replaced", title: "Crème Brûlée", want: "cr-me-br-l-e"},
		{name: "empty title falls back to hash", title: "", want: "recipe-da39a3ee5e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, larder.Slugify(tt.title))
		})
	}
}

func TestSlugify_SymbolOnlyTitleIsDeterministic(t *testing.T) {
	t.Parallel()

	first := larder.Slugify("!!!")
	second := larder.Slugify("!!!")

	assert.Equal(t, first, second)
	assert.Regexp(t, `^recipe-[0-9a-f]{10}$`, first)
	assert.NotEqual(t, larder.Slugify("???"), first)
}

func TestSlugify_TruncatesLongTitles(t *testing.T) {
	t.Parallel()

	slug := larder.Slugify(strings.Repeat("a", 100))

	assert.Len(t, slug, larder.MaxSlugLength)
}

func TestSlugAllocator_Allocate(t *testing.T) {
	t.Parallel()

	t.Run("suffixes repeated slugs in order", func(t *testing.T) {
		t.Parallel()

		a := larder.NewSlugAllocator()

		assert.Equal(t, "pasta", a.Allocate("Pasta"))
		assert.Equal(t, "pasta-2", a.Allocate("Pasta!"))
		assert.Equal(t, "pasta-3", a.Allocate("pasta"))
		assert.Equal(t, "soup", a.Allocate("Soup"))
	})

	t.Run("skips suffixes already taken by other titles", func(t *testing.T) {
		t.Parallel()

		a := larder.NewSlugAllocator()

		assert.Equal(t, "pasta-2", a.Allocate("Pasta 2"))
		assert.Equal(t, "pasta", a.Allocate("Pasta"))
		assert.Equal(t, "pasta-3", a.Allocate("Pasta"))
	})
}
