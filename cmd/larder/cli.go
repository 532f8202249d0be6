package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/larder/imagecache"
	"github.com/fwojciec/larder/prefill"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Cacher    *imagecache.Cacher
	Prefiller *prefill.Prefiller

	// NewID generates ids for recipes created by add.
	NewID func() string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every network request"`

	CacheImages   CacheImagesCmd   `cmd:"" name:"cache-images" help:"Cache each recipe's remote imageUrl locally"`
	CachePreviews CachePreviewsCmd `cmd:"" name:"cache-previews" help:"Cache the preview image of each recipe's source page"`
	Validate      ValidateCmd      `cmd:"" help:"Validate a recipe dataset and summarise it"`
	Prefill       PrefillCmd       `cmd:"" help:"Extract recipe data from a source URL"`
	Add           AddCmd           `cmd:"" help:"Add a recipe from a source URL to the dataset"`
}

// CacheOptions are shared by the image caching commands.
type CacheOptions struct {
	RecipesFile  string        `name:"recipes-file" default:"recipes.json" help:"Path to recipes JSON file"`
	OutputFile   string        `name:"output-file" help:"Where to write the updated JSON (default: overwrite recipes file)"`
	ImageDir     string        `name:"image-dir" default:"public/images/recipes" help:"Directory to write cached images"`
	PublicDir    string        `name:"public-dir" default:"public" help:"Directory served as the site root"`
	SkipExisting bool          `name:"skip-existing" help:"Reuse existing cached files when available"`
	DryRun       bool          `name:"dry-run" help:"Describe planned actions without downloading or writing files"`
	Timeout      time.Duration `default:"30s" help:"Timeout for each request"`
	Rate         float64       `default:"1" help:"Requests per second to one host (0 disables limiting)"`
}

// CacheImagesCmd is the "cache-images" subcommand.
type CacheImagesCmd struct {
	CacheOptions `embed:""`
}

// CachePreviewsCmd is the "cache-previews" subcommand.
type CachePreviewsCmd struct {
	CacheOptions   `embed:""`
	OEmbedEndpoint string `name:"oembed-endpoint" default:"https://api.instagram.com/oembed/?url=" help:"oEmbed endpoint for Instagram posts"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	RecipesFile     string   `name:"recipes-file" default:"recipes.json" help:"Path to recipes JSON file"`
	ExcludeMealType []string `name:"exclude-meal-type" default:"all" help:"Reserved meal types removed from recipes (repeatable)"`
}

// PrefillOptions configure how source pages are fetched and read.
type PrefillOptions struct {
	Fetch        string        `default:"proxy" enum:"proxy,direct,browser" help:"How to fetch source pages (proxy, direct, browser)"`
	Proxy        string        `default:"https://r.jina.ai/" env:"LARDER_PROXY" help:"Text-extraction proxy origin"`
	Article      string        `default:"trafilatura" enum:"trafilatura,readability" help:"Main content extractor (trafilatura, readability)"`
	Timeout      time.Duration `default:"30s" help:"Timeout for each page fetch"`
	GeminiAPIKey string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Enables model-based extraction"`
	Model        string        `default:"gemini-2.5-flash" help:"Gemini model for model-based extraction"`
}

// PrefillCmd is the "prefill" subcommand.
type PrefillCmd struct {
	URL            string `arg:"" help:"Recipe source URL"`
	PrefillOptions `embed:""`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URL            string   `arg:"" help:"Recipe source URL"`
	RecipesFile    string   `name:"recipes-file" default:"recipes.json" help:"Path to recipes JSON file"`
	OutputFile     string   `name:"output-file" help:"Where to write the updated JSON (default: overwrite recipes file)"`
	Title          string   `help:"Recipe title"`
	Ingredient     []string `help:"Ingredient line (repeatable)"`
	Step           []string `help:"Step (repeatable)"`
	MealType       []string `name:"meal-type" help:"Meal type (repeatable)"`
	PrefillOptions `embed:""`
}
