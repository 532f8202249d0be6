package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/fs"
	"github.com/fwojciec/larder/prefill"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	if !larder.IsRemoteURL(c.URL) {
		fmt.Fprintf(deps.Stderr, "error: source URL must be an absolute http(s) URL\n")
		return larder.Errorf(larder.EINVALID, "source URL must be an absolute http(s) URL: %q", c.URL)
	}

	coll, err := fs.ReadCollection(c.RecipesFile)
	if larder.ErrorCode(err) == larder.ENOTFOUND {
		coll = &larder.Collection{}
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}

	key := larder.NormalizeForLookup(c.URL)
	for _, r := range coll.Recipes {
		if strings.TrimSpace(r.SourceURL) != "" && larder.NormalizeForLookup(r.SourceURL) == key {
			fmt.Fprintf(deps.Stderr, "error: a recipe from %s already exists (%s)\n", c.URL, r.Title)
			return larder.Errorf(larder.ECONFLICT, "recipe from %s already exists", c.URL)
		}
	}

	session := prefill.NewSession(deps.Prefiller)
	defer session.Close()
	session.Edit(func(d *larder.Draft) {
		d.Title = c.Title
		d.Ingredients = c.Ingredient
		d.Steps = c.Step
		d.MealTypes = c.MealType
	})

	update := <-session.SetSourceURL(deps.Ctx, c.URL)
	if update.Err != nil {
		if deps.Ctx.Err() != nil {
			return deps.Ctx.Err()
		}
		deps.Logger.Warn("prefill failed", "url", c.URL, "err", update.Err)
	}

	draft := session.Draft()
	if strings.TrimSpace(draft.Title) == "" {
		fmt.Fprintf(deps.Stderr, "error: no title found at %s; pass --title\n", c.URL)
		return larder.Errorf(larder.EINVALID, "recipe title is required")
	}

	recipe := draft.Recipe(deps.NewID())
	coll.Recipes = append(coll.Recipes, recipe)

	output := c.OutputFile
	if output == "" {
		output = c.RecipesFile
	}
	if err := fs.WriteCollection(output, coll); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added %q (%s) to %s\n", recipe.Title, recipe.ID, output)
	if len(update.Filled) > 0 {
		fmt.Fprintf(deps.Stdout, "Prefilled: %s\n", strings.Join(update.Filled, ", "))
	}
	return nil
}
