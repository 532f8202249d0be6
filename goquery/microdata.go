package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/larder"
)

// Ensure MicrodataExtractor implements larder.RecipeExtractor at compile time.
var _ larder.RecipeExtractor = (*MicrodataExtractor)(nil)

// MicrodataExtractor reads recipe fields from itemprop attributes.
type MicrodataExtractor struct{}

// NewMicrodataExtractor creates a new MicrodataExtractor.
func NewMicrodataExtractor() *MicrodataExtractor {
	return &MicrodataExtractor{}
}

// ExtractRecipe collects ingredient and instruction text from microdata
// and the title from og:title or the document title.
func (e *MicrodataExtractor) ExtractRecipe(ctx context.Context, page *larder.Page) (*larder.RecipeExtract, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, larder.Errorf(larder.EINVALID, "failed to parse HTML: %v", err)
	}
	return ExtractMicrodata(doc), nil
}

// ExtractMicrodata returns nil when neither a title, ingredients nor steps
// were found.
func ExtractMicrodata(doc *goquery.Document) *larder.RecipeExtract {
	r := &larder.RecipeExtract{Title: Title(doc)}

	seen := make(map[string]bool)
	doc.Find(`[itemprop~="recipeIngredient"], [itemprop~="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		r.Ingredients = appendUnique(r.Ingredients, seen, itemValue(s))
	})

	seen = make(map[string]bool)
	doc.Find(`[itemprop~="recipeInstructions"]`).Each(func(_ int, s *goquery.Selection) {
		items := s.Find(`[itemprop~="text"], li, p`)
		if items.Length() == 0 {
			r.Steps = appendUnique(r.Steps, seen, cleanLines(textWithBreaks(s))...)
			return
		}
		items.Each(func(_ int, item *goquery.Selection) {
			// Nested matches are reported by their innermost element.
			if item.Find(`[itemprop~="text"], li, p`).Length() > 0 {
				return
			}
			r.Steps = appendUnique(r.Steps, seen, collapse(item.Text()))
		})
	})

	if r.IsEmpty() {
		return nil
	}
	return r
}

// Title returns og:title when present, else the document title.
func Title(doc *goquery.Document) string {
	if v := MetaContent(doc, "og:title"); v != "" {
		return v
	}
	return collapse(doc.Find("title").First().Text())
}

// MetaContent returns the trimmed content of the first meta tag whose
// property or name equals key.
func MetaContent(doc *goquery.Document, key string) string {
	sel := doc.Find(`meta[property="` + key + `"], meta[name="` + key + `"]`).First()
	v, _ := sel.Attr("content")
	return strings.TrimSpace(v)
}

// itemValue prefers the content attribute used on meta items.
func itemValue(s *goquery.Selection) string {
	if v, ok := s.Attr("content"); ok {
		return collapse(v)
	}
	return collapse(s.Text())
}

func textWithBreaks(s *goquery.Selection) string {
	if v, ok := s.Attr("content"); ok {
		return v
	}
	h, err := s.Html()
	if err != nil {
		return s.Text()
	}
	return h
}
