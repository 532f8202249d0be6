package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/fs"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	coll, err := fs.ReadCollection(c.RecipesFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}

	recipes := coll.Normalize(larder.MealTypePolicy{Exclude: c.ExcludeMealType})

	var untitled, placeholders, withoutSteps int
	mealTypes := make(map[string]int)
	for i, r := range recipes {
		src := coll.Recipes[i]
		if strings.TrimSpace(src.Title) == "" {
			untitled++
		}
		if strings.TrimSpace(src.ImageURL) == "" {
			placeholders++
		}
		if r.Steps == nil {
			withoutSteps++
		}
		for _, m := range r.MealTypes {
			mealTypes[strings.ToLower(m)]++
		}
	}

	fmt.Fprintf(deps.Stdout, "%s: %d recipes\n", c.RecipesFile, len(recipes))
	fmt.Fprintf(deps.Stdout, "  untitled:           %d\n", untitled)
	fmt.Fprintf(deps.Stdout, "  placeholder images: %d\n", placeholders)
	fmt.Fprintf(deps.Stdout, "  without steps:      %d\n", withoutSteps)

	if len(mealTypes) > 0 {
		names := make([]string, 0, len(mealTypes))
		for name := range mealTypes {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s (%d)", name, mealTypes[name]))
		}
		fmt.Fprintf(deps.Stdout, "  meal types:         %s\n", strings.Join(parts, ", "))
	}
	return nil
}
