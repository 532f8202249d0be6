package goquery

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/larder"
)

// Ensure JSONLDExtractor implements larder.RecipeExtractor at compile time.
var _ larder.RecipeExtractor = (*JSONLDExtractor)(nil)

// JSONLDExtractor reads schema.org Recipe nodes from JSON-LD script blocks.
type JSONLDExtractor struct{}

// NewJSONLDExtractor creates a new JSONLDExtractor.
func NewJSONLDExtractor() *JSONLDExtractor {
	return &JSONLDExtractor{}
}

// ExtractRecipe returns the first Recipe node found in the page's JSON-LD.
// Malformed blocks are skipped.
func (e *JSONLDExtractor) ExtractRecipe(ctx context.Context, page *larder.Page) (*larder.RecipeExtract, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, larder.Errorf(larder.EINVALID, "failed to parse HTML: %v", err)
	}
	return ExtractJSONLD(doc), nil
}

// ExtractJSONLD scans every JSON-LD block of doc, in document order, for an
// object whose @type is Recipe. Arrays and @graph members are searched
// recursively. Returns nil when no block yields recipe data.
func ExtractJSONLD(doc *goquery.Document) *larder.RecipeExtract {
	var result *larder.RecipeExtract
	doc.Find("script[type]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		typ, _ := s.Attr("type")
		if !strings.Contains(strings.ToLower(typ), "ld+json") {
			return true
		}

		var data any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &data); err != nil {
			return true
		}

		node := findRecipe(data)
		if node == nil {
			return true
		}
		if r := recipeFromNode(node); !r.IsEmpty() {
			result = r
			return false
		}
		return true
	})
	return result
}

// findRecipe returns the first Recipe object in v, depth first.
func findRecipe(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if node := findRecipe(item); node != nil {
				return node
			}
		}
	case map[string]any:
		if isRecipeType(t["@type"]) {
			return t
		}
		if graph, ok := t["@graph"]; ok {
			return findRecipe(graph)
		}
	}
	return nil
}

func isRecipeType(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "recipe")
	case []any:
		for _, item := range t {
			if isRecipeType(item) {
				return true
			}
		}
	}
	return false
}

func recipeFromNode(node map[string]any) *larder.RecipeExtract {
	r := &larder.RecipeExtract{}
	for _, key := range []string{"name", "headline"} {
		if s, ok := node[key].(string); ok {
			if r.Title = cleanText(s); r.Title != "" {
				break
			}
		}
	}

	seen := make(map[string]bool)
	ingredients := node["recipeIngredient"]
	if ingredients == nil {
		ingredients = node["ingredients"]
	}
	for _, s := range stringList(ingredients) {
		r.Ingredients = appendUnique(r.Ingredients, seen, cleanText(s))
	}

	flattenInstructions(node["recipeInstructions"], &r.Steps)
	return r
}

// stringList accepts a string or an array of strings.
func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// flattenInstructions appends the steps found in v to steps. It accepts a
// string, a list, HowToStep objects (text, then name) and HowToSection
// objects with nested itemListElement.
func flattenInstructions(v any, steps *[]string) {
	switch t := v.(type) {
	case string:
		*steps = append(*steps, cleanLines(t)...)
	case []any:
		for _, item := range t {
			flattenInstructions(item, steps)
		}
	case map[string]any:
		if items, ok := t["itemListElement"]; ok {
			flattenInstructions(items, steps)
			return
		}
		for _, key := range []string{"text", "name"} {
			if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
				*steps = append(*steps, cleanLines(s)...)
				return
			}
		}
	}
}
