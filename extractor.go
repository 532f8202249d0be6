package larder

import "context"

// RecipeExtract holds recipe fields recovered from a source page.
// It is produced per fetch attempt and consumed immediately.
type RecipeExtract struct {
	Title       string   `json:"title,omitempty"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// HasContent reports whether the extract carries ingredients or steps.
func (e *RecipeExtract) HasContent() bool {
	return e != nil && (len(e.Ingredients) > 0 || len(e.Steps) > 0)
}

// IsEmpty reports whether nothing at all was extracted.
func (e *RecipeExtract) IsEmpty() bool {
	return e == nil || (e.Title == "" && !e.HasContent())
}

// RecipeExtractor recovers recipe fields from a page.
type RecipeExtractor interface {
	// ExtractRecipe returns the recipe found on the page.
	// A page without recognizable recipe data yields (nil, nil): callers
	// treat it as "could not determine", not as a failure.
	ExtractRecipe(ctx context.Context, page *Page) (*RecipeExtract, error)
}

// Article holds the main content of an HTML page.
type Article struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML, boilerplate removed.
	ContentHTML string
}

// ArticleExtractor isolates the main content of HTML pages.
type ArticleExtractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*Article, error)
}
