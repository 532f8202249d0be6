package main

import (
	"fmt"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/fs"
)

// Run executes the cache-images command.
func (c *CacheImagesCmd) Run(deps *Dependencies) error {
	return runCache(deps, &c.CacheOptions)
}

// Run executes the cache-previews command.
func (c *CachePreviewsCmd) Run(deps *Dependencies) error {
	return runCache(deps, &c.CacheOptions)
}

func runCache(deps *Dependencies, opts *CacheOptions) error {
	coll, err := fs.ReadCollection(opts.RecipesFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}

	report, err := deps.Cacher.Run(deps.Ctx, coll)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}
	deps.Logger.Debug("cache finished",
		"processed", report.Processed,
		"skipped", report.Skipped,
		"reused", report.Reused,
		"downloaded", report.Downloaded,
		"failed", report.Failed,
		"changed", report.Changed,
	)

	if opts.DryRun {
		return nil
	}
	if report.Changed == 0 {
		fmt.Fprintln(deps.Stdout, "No changes made.")
		return nil
	}

	output := opts.OutputFile
	if output == "" {
		output = opts.RecipesFile
	}
	if err := fs.WriteCollection(output, coll); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote updated recipes to %s\n", output)
	return nil
}
