package larder

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

// MaxSlugLength bounds the length of generated slugs.
const MaxSlugLength = 60

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a filesystem- and URL-safe identifier from a title.
// Titles without any ASCII letters or digits fall back to "recipe-" followed
// by ten hex characters of the title's SHA-1, so the result is never empty.
func Slugify(title string) string {
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		sum := sha1.Sum([]byte(title))
		return "recipe-" + hex.EncodeToString(sum[:])[:10]
	}
	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
	}
	return slug
}

// SlugAllocator hands out unique slugs within one run.
// The first title for a base slug keeps it; later ones get -2, -3, and so on.
type SlugAllocator struct {
	counts map[string]int
	used   map[string]bool
}

// NewSlugAllocator creates an empty SlugAllocator.
func NewSlugAllocator() *SlugAllocator {
	return &SlugAllocator{
		counts: make(map[string]int),
		used:   make(map[string]bool),
	}
}

// Allocate returns the next unique slug for title.
func (a *SlugAllocator) Allocate(title string) string {
	base := Slugify(title)
	n := a.counts[base]
	for {
		n++
		slug := base
		if n > 1 {
			slug = base + "-" + strconv.Itoa(n)
		}
		if !a.used[slug] {
			a.counts[base] = n
			a.used[slug] = true
			return slug
		}
	}
}
