package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/larder"
)

// Run executes the prefill command.
func (c *PrefillCmd) Run(deps *Dependencies) error {
	r, err := deps.Prefiller.Prefill(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}
	if r == nil {
		fmt.Fprintf(deps.Stdout, "No recipe data found at %s\n", c.URL)
		return nil
	}

	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
