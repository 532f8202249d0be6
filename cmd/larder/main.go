package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/caption"
	"github.com/fwojciec/larder/fs"
	"github.com/fwojciec/larder/gemini"
	"github.com/fwojciec/larder/goquery"
	"github.com/fwojciec/larder/htmltomarkdown"
	larderhttp "github.com/fwojciec/larder/http"
	"github.com/fwojciec/larder/imagecache"
	"github.com/fwojciec/larder/prefill"
	"github.com/fwojciec/larder/preview"
	"github.com/fwojciec/larder/readability"
	"github.com/fwojciec/larder/rod"
	larderslog "github.com/fwojciec/larder/slog"
	"github.com/fwojciec/larder/trafilatura"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher used by prefill and add. Closed when Run returns.
	Fetcher larder.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		NewID:  uuid.NewString,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("larder"),
		kong.Description("Recipe dataset toolkit: validation, source prefill and image caching."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'larder --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	// Subcommand --help prints usage without selecting a runnable command.
	if hasHelpFlag(args) {
		return nil
	}
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	defer m.Close()

	switch cmd, _, _ := strings.Cut(kongCtx.Command(), " "); cmd {
	case "cache-images":
		deps.Cacher = newCacher(&cli.CacheImages.CacheOptions, deps, cli.Verbose)
	case "cache-previews":
		deps.Cacher = newCacher(&cli.CachePreviews.CacheOptions, deps, cli.Verbose)
		deps.Cacher.Resolvers = newImageResolvers(&cli.CachePreviews, deps, cli.Verbose)
	case "prefill":
		if err := m.wirePrefiller(ctx, &cli.Prefill.PrefillOptions, deps, cli.Verbose); err != nil {
			return err
		}
	case "add":
		if err := m.wirePrefiller(ctx, &cli.Add.PrefillOptions, deps, cli.Verbose); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newCacher(opts *CacheOptions, deps *Dependencies, verbose bool) *imagecache.Cacher {
	var downloader larder.ImageDownloader = larderhttp.NewDownloader(larderhttp.WithTimeout(opts.Timeout))
	if verbose {
		downloader = larderslog.NewLoggingDownloader(downloader, deps.Logger)
	}
	return &imagecache.Cacher{
		Downloader:   downloader,
		Store:        fs.NewImageStore(opts.ImageDir, opts.PublicDir),
		Limiter:      imagecache.NewDomainLimiter(opts.Rate),
		Logger:       deps.Logger,
		Out:          deps.Stdout,
		SkipExisting: opts.SkipExisting,
		DryRun:       opts.DryRun,
	}
}

// newImageResolvers returns the preview strategies in priority order:
// the oEmbed thumbnail for Instagram posts, then the page's meta tags.
func newImageResolvers(cmd *CachePreviewsCmd, deps *Dependencies, verbose bool) []larder.ImageResolver {
	var fetcher larder.Fetcher = larderhttp.NewFetcher(larderhttp.WithTimeout(cmd.Timeout))
	if verbose {
		fetcher = larderslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	var oembed larder.ImageResolver = larderhttp.NewOEmbedResolver(cmd.OEmbedEndpoint, larderhttp.WithTimeout(cmd.Timeout))
	var page larder.ImageResolver = preview.NewPageResolver(fetcher, deps.Cacher.Limiter)
	if verbose {
		oembed = larderslog.NewLoggingImageResolver(oembed, "oembed", deps.Logger)
		page = larderslog.NewLoggingImageResolver(page, "preview", deps.Logger)
	}
	return []larder.ImageResolver{oembed, page}
}

func (m *Main) wirePrefiller(ctx context.Context, opts *PrefillOptions, deps *Dependencies, verbose bool) error {
	switch opts.Fetch {
	case "browser":
		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(opts.Timeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.Fetcher = fetcher
	case "direct":
		m.Fetcher = larderhttp.NewFetcher(larderhttp.WithTimeout(opts.Timeout))
	default:
		m.Fetcher = larderhttp.NewProxyFetcher(opts.Proxy, larderhttp.WithTimeout(opts.Timeout))
	}

	var articles larder.ArticleExtractor = trafilatura.NewExtractor()
	if opts.Article == "readability" {
		articles = readability.NewExtractor()
	}
	converter := htmltomarkdown.NewConverter()

	type strategy struct {
		name      string
		extractor larder.RecipeExtractor
	}
	strategies := []strategy{
		{"jsonld", goquery.NewJSONLDExtractor()},
		{"microdata", goquery.NewMicrodataExtractor()},
		{"caption", caption.NewExtractor()},
		{"article", &prefill.ArticleExtractor{
			Articles:  articles,
			Converter: converter,
			Lines:     htmltomarkdown.PlainLines,
		}},
	}

	if opts.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  opts.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		extractor := gemini.NewExtractor(client, opts.Model, articles, converter)
		if counter, err := gemini.NewTokenCounter(gemini.TokenizerModel); err == nil {
			extractor.Tokens = counter
		} else {
			deps.Logger.Warn("token counting disabled", "err", err)
		}
		strategies = append(strategies, strategy{"gemini", extractor})
	}

	fetcher := m.Fetcher
	if verbose {
		fetcher = larderslog.NewLoggingFetcher(fetcher, deps.Logger)
	}
	extractors := make([]larder.RecipeExtractor, 0, len(strategies))
	for _, s := range strategies {
		e := s.extractor
		if verbose {
			e = larderslog.NewLoggingRecipeExtractor(e, s.name, deps.Logger)
		}
		extractors = append(extractors, e)
	}

	deps.Prefiller = prefill.NewPrefiller(fetcher, prefill.NewChain(deps.Logger, extractors...))
	return nil
}
