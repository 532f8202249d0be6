// Package caption recovers ingredients and steps from free-form recipe
// captions, such as the descriptions of social media posts.
package caption

import (
	"regexp"
	"strings"
)

var ingredientKeywords = []string{
	"you need",
	"ingredients",
	"ingredient list",
	"what you need",
	"here's what you need",
	"you will need",
	"shopping list",
	"for the salad",
	"for the dressing",
	"for the sauce",
	"for the marinade",
}

var ingredientStopwords = []string{
	"how", "method", "instructions", "directions", "steps", "prep",
	"preparation", "makes", "serves", "macros", "calories", "enjoy", "note",
	"notes", "tip", "tips", "storage", "cook", "bake", "fry", "to make",
}

// Lines starting with these prefixes belong to the ingredient list.
var ingredientPrefixes = []string{
	"optional toppings", "optional:", "toppings", "garnish", "for the",
}

var instructionKeywords = []string{
	"how", "instructions", "method", "directions", "steps", "to make",
	"prep", "preparation", "cook", "bake", "finish",
}

var instructionTerminators = []string{
	"serves", "macros", "calories", "enjoy", "notes", "note", "tag", "share",
}

var measurementTokens = []string{
	"cup", "cups", "tsp", "teaspoon", "teaspoons", "tbsp", "tablespoon",
	"tablespoons", "g", "gram", "grams", "kg", "ml", "l", "oz", "lb", "lbs",
	"clove", "cloves", "slice", "slices", "sprig", "sprigs", "bunch",
	"handful", "packet", "pack", "package", "can", "tin", "fillet", "fillets",
	"stick", "sticks",
}

var (
	measurementRe = regexp.MustCompile(`\b(` + strings.Join(measurementTokens, "|") + `)\b`)
	digitRe       = regexp.MustCompile(`\d`)
	numberedRe    = regexp.MustCompile(`^[0-9]+[).]`)
	bulletRe      = regexp.MustCompile(`^[-•–—]\s*(.+)$`)
	stepRe        = regexp.MustCompile(`(?i)^(?:step\s*)?(\d+)[).:\-]?\s*(.+)$`)
	inlineListRe  = regexp.MustCompile(`(?is)(ingredients[^:]*:)(.+)`)
)

// Parse splits a caption into ingredient lines and ordered steps.
// Either result may be empty when the caption does not follow a
// recognizable layout.
func Parse(description string) (ingredients, steps []string) {
	lines := prepareLines(description)
	ingredients, next := parseIngredients(lines)
	steps = parseSteps(lines, next)
	return ingredients, steps
}

// prepareLines trims lines and drops blank lines and immediate repeats.
func prepareLines(description string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(description, "\r", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if n := len(lines); n > 0 && lines[n-1] == line {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseIngredients returns the ingredient list and the index of the first
// line after it.
func parseIngredients(lines []string) ([]string, int) {
	start := 0
	for i, line := range lines {
		if containsAny(strings.ToLower(line), ingredientKeywords) {
			start = i + 1
			break
		}
	}

	var ingredients []string
	i := start
	for ; i < len(lines); i++ {
		line := lines[i]
		lower := strings.ToLower(line)

		if strings.HasPrefix(lower, "#") || strings.HasPrefix(lower, "http") || hasPrefixAny(lower, ingredientStopwords) {
			if len(ingredients) > 0 {
				break
			}
			continue
		}
		if numberedRe.MatchString(line) && len(ingredients) > 0 {
			break
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			ingredients = append(ingredients, strings.TrimSpace(m[1]))
			continue
		}
		if hasPrefixAny(lower, ingredientPrefixes) || measurementRe.MatchString(lower) || digitRe.MatchString(line) {
			ingredients = append(ingredients, line)
			continue
		}
		if len(ingredients) > 0 {
			break
		}
	}
	if len(ingredients) > 0 {
		return ingredients, i
	}

	// "Ingredients: eggs, milk, flour" on a single line.
	if m := inlineListRe.FindStringSubmatch(strings.Join(lines, "\n")); m != nil {
		rest, _, _ := strings.Cut(m[2], "\n")
		for _, token := range strings.Split(rest, ",") {
			if token = strings.Trim(token, " .;-"); token != "" {
				ingredients = append(ingredients, token)
			}
		}
	}
	return ingredients, start
}

// parseSteps collects numbered steps from start, folding continuation
// lines into the previous step.
func parseSteps(lines []string, start int) []string {
	var steps []string
	for i := start; i < len(lines); i++ {
		line := lines[i]
		lower := strings.ToLower(line)

		if strings.HasPrefix(lower, "#") || strings.HasPrefix(lower, "http") {
			break
		}
		if containsAny(lower, instructionTerminators) && len(steps) > 0 {
			break
		}
		if containsAny(lower, instructionKeywords) && !numberedRe.MatchString(line) {
			continue
		}
		if m := stepRe.FindStringSubmatch(line); m != nil {
			steps = append(steps, strings.TrimSpace(m[2]))
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil && len(steps) > 0 {
			steps = append(steps, strings.TrimSpace(m[1]))
			continue
		}
		if n := len(steps); n > 0 {
			steps[n-1] = strings.TrimSpace(steps[n-1] + " " + line)
		}
	}
	return steps
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func hasPrefixAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
