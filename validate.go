package larder

import (
	"fmt"
	"strings"
)

// UntitledRecipe is the title given to recipes without one.
const UntitledRecipe = "Untitled recipe"

// ValidationKind enumerates the ways a dataset can fail validation.
type ValidationKind int

// Validation failure kinds.
const (
	ValidationNotObject ValidationKind = iota + 1
	ValidationMissingRecipes
	ValidationRecipesNotArray
	ValidationRecipeNotObject
)

// String returns a short description of the kind.
func (k ValidationKind) String() string {
	switch k {
	case ValidationNotObject:
		return "dataset is not a JSON object"
	case ValidationMissingRecipes:
		return "dataset has no recipes array"
	case ValidationRecipesNotArray:
		return "recipes is not an array"
	case ValidationRecipeNotObject:
		return "recipe is not an object"
	}
	return "invalid dataset"
}

// ValidationError describes why a dataset was rejected.
// Index is the offending recipe position, or -1 for dataset-level failures.
type ValidationError struct {
	Kind  ValidationKind
	Index int
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.message()
}

func (e *ValidationError) message() string {
	msg := e.Kind.String()
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s (recipe %d)", msg, e.Index)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the failure as an EINVALID application error.
func (e *ValidationError) Unwrap() error {
	return Errorf(EINVALID, "%s", e.message())
}

// MealTypePolicy decides which meal-type tags survive ingest.
type MealTypePolicy struct {
	// Exclude lists reserved tags removed from every recipe (case-insensitive).
	Exclude []string
}

// DefaultMealTypePolicy excludes the catch-all "all" tag used by the browse filter.
func DefaultMealTypePolicy() MealTypePolicy {
	return MealTypePolicy{Exclude: []string{"all"}}
}

// Allowed reports whether tag may be kept on a recipe.
func (p MealTypePolicy) Allowed(tag string) bool {
	for _, ex := range p.Exclude {
		if strings.EqualFold(strings.TrimSpace(ex), tag) {
			return false
		}
	}
	return true
}

// Normalize returns validated copies of every recipe in the collection.
// The collection itself is left untouched.
//
// After normalization every recipe has a non-empty, unique ID and title, and
// MealTypes and Ingredients are non-nil.
func (c *Collection) Normalize(policy MealTypePolicy) []*Recipe {
	out := make([]*Recipe, 0, len(c.Recipes))
	reserved := make(map[string]bool, len(c.Recipes))
	for _, r := range c.Recipes {
		if id := strings.TrimSpace(r.ID); id != "" {
			reserved[id] = true
		}
	}
	used := make(map[string]bool, len(c.Recipes))
	for i, r := range c.Recipes {
		n := NormalizeRecipe(r, i, policy)
		if strings.TrimSpace(r.ID) == "" || used[n.ID] {
			n.ID = freeID(i, used, reserved)
		}
		used[n.ID] = true
		out = append(out, n)
	}
	return out
}

// freeID returns the first of recipe-<index>, recipe-<index>-2, ... that no
// recipe uses or carries in the source.
func freeID(index int, used, reserved map[string]bool) string {
	base := syntheticID(index)
	id := base
	for n := 2; used[id] || reserved[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

// NormalizeRecipe returns a validated copy of r at position index.
func NormalizeRecipe(r *Recipe, index int, policy MealTypePolicy) *Recipe {
	n := &Recipe{
		ID:          strings.TrimSpace(r.ID),
		Title:       strings.TrimSpace(r.Title),
		SourceURL:   strings.TrimSpace(r.SourceURL),
		ImageURL:    strings.TrimSpace(r.ImageURL),
		MealTypes:   []string{},
		Ingredients: cleanLines(r.Ingredients),
	}
	if n.ID == "" {
		n.ID = syntheticID(index)
	}
	if n.Title == "" {
		n.Title = UntitledRecipe
	}
	if n.ImageURL == "" {
		n.ImageURL = PlaceholderImageURL(n.Title)
	}

	seen := make(map[string]bool)
	for _, tag := range r.MealTypes {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] || !policy.Allowed(tag) {
			continue
		}
		seen[key] = true
		n.MealTypes = append(n.MealTypes, tag)
	}

	if r.Steps != nil {
		n.Steps = cleanLines(r.Steps)
	}
	if r.DurationMinutes > 0 {
		n.DurationMinutes = r.DurationMinutes
	}
	return n
}

// PlaceholderImageURL returns a deterministic stock image keyed by title.
func PlaceholderImageURL(title string) string {
	return "https://picsum.photos/seed/" + Slugify(title) + "/800/600"
}

func syntheticID(index int) string {
	return fmt.Sprintf("recipe-%d", index)
}

// cleanLines trims every line and drops empty ones. Never returns nil.
func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
