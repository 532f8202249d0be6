package larder

import "strings"

// Draft fields reported by Apply.
const (
	DraftTitle       = "title"
	DraftIngredients = "ingredients"
	DraftSteps       = "steps"
)

// Draft is a recipe being entered by a user.
type Draft struct {
	SourceURL   string
	Title       string
	Ingredients []string
	Steps       []string
	MealTypes   []string
}

// Apply fills the fields the user has not typed yet from e.
// Fields already holding a value are never overwritten.
// It returns the names of the fields that were filled.
func (d *Draft) Apply(e *RecipeExtract) []string {
	if e == nil {
		return nil
	}
	var filled []string
	if strings.TrimSpace(d.Title) == "" && e.Title != "" {
		d.Title = e.Title
		filled = append(filled, DraftTitle)
	}
	if len(cleanLines(d.Ingredients)) == 0 && len(e.Ingredients) > 0 {
		d.Ingredients = append([]string(nil), e.Ingredients...)
		filled = append(filled, DraftIngredients)
	}
	if len(cleanLines(d.Steps)) == 0 && len(e.Steps) > 0 {
		d.Steps = append([]string(nil), e.Steps...)
		filled = append(filled, DraftSteps)
	}
	return filled
}

// Recipe converts the draft into a recipe with the given ID.
// Steps stay absent when the draft has none.
func (d *Draft) Recipe(id string) *Recipe {
	r := &Recipe{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		SourceURL:   strings.TrimSpace(d.SourceURL),
		MealTypes:   cleanLines(d.MealTypes),
		Ingredients: cleanLines(d.Ingredients),
	}
	if steps := cleanLines(d.Steps); len(steps) > 0 {
		r.Steps = steps
	}
	return r
}
