// Package gemini recovers recipes from article text with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/larder"
	"google.golang.org/genai"
)

// DefaultModel is the model used for recipe extraction.
const DefaultModel = "gemini-2.5-flash"

// TokenizerModel is the model name understood by the local tokenizer.
const TokenizerModel = "gemini-2.5-flash"

// DefaultMaxTokens bounds the article text sent in one prompt.
const DefaultMaxTokens = 30000

// Ensure Extractor implements larder.RecipeExtractor at compile time.
var _ larder.RecipeExtractor = (*Extractor)(nil)

// Extractor asks Gemini to read a recipe out of a page's main content.
type Extractor struct {
	client    *genai.Client
	model     string
	articles  larder.ArticleExtractor
	converter larder.Converter

	// Tokens, when set, trims article text to MaxTokens before prompting.
	Tokens    larder.TokenCounter
	MaxTokens int
}

// NewExtractor creates a new Extractor. An empty model uses DefaultModel.
func NewExtractor(client *genai.Client, model string, articles larder.ArticleExtractor, converter larder.Converter) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{
		client:    client,
		model:     model,
		articles:  articles,
		converter: converter,
		MaxTokens: DefaultMaxTokens,
	}
}

// ExtractRecipe returns nil when the model finds no recipe on the page.
func (e *Extractor) ExtractRecipe(ctx context.Context, page *larder.Page) (*larder.RecipeExtract, error) {
	if page == nil || strings.TrimSpace(page.HTML) == "" {
		return nil, larder.Errorf(larder.EINVALID, "empty page")
	}

	article, err := e.articles.Extract(page.HTML)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.ContentHTML) == "" {
		return nil, nil
	}
	text, err := e.converter.Convert(article.ContentHTML)
	if err != nil {
		return nil, err
	}
	if text, err = TrimToTokens(ctx, e.Tokens, text, e.MaxTokens); err != nil {
		return nil, err
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(page.URL, article.Title, text)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, larder.Errorf(larder.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text())
}

// TrimToTokens shortens text proportionally until counter reports at most
// limit tokens, giving up after a few rounds. A nil counter or a non-positive
// limit leaves text unchanged.
func TrimToTokens(ctx context.Context, counter larder.TokenCounter, text string, limit int) (string, error) {
	if counter == nil || limit <= 0 {
		return text, nil
	}
	for range 3 {
		n, err := counter.CountTokens(ctx, text)
		if err != nil {
			return "", err
		}
		if n <= limit {
			return text, nil
		}
		runes := []rune(text)
		text = string(runes[:len(runes)*limit/n])
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
// Responses are constrained to the extract's JSON shape.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	lines := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You extract recipes from web pages. Copy ingredient lines and steps as written on the page, one item per entry, without inventing anything. If the page contains no recipe, return empty lists.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":       {Type: genai.TypeString},
				"ingredients": lines,
				"steps":       lines,
			},
			Required: []string{"ingredients", "steps"},
		},
	}
}

// BuildUserPrompt builds the prompt carrying the page content.
func BuildUserPrompt(sourceURL, title, content string) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	fmt.Fprintf(&sb, "<source>%s</source>\n", sourceURL)
	if title != "" {
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	}
	fmt.Fprintf(&sb, "<content>\n%s\n</content>\n", strings.TrimSpace(content))
	sb.WriteString("</page>\n\n")
	sb.WriteString("Extract the recipe title, ingredients and steps from this page.")
	return sb.String()
}

// ParseResponse decodes a model response into an extract. Code fences
// around the JSON are tolerated. Returns nil when the response is empty.
func ParseResponse(text string) (*larder.RecipeExtract, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var raw larder.RecipeExtract
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, larder.Errorf(larder.EINVALID, "decoding model response: %v", err)
	}

	r := &larder.RecipeExtract{
		Title:       strings.TrimSpace(raw.Title),
		Ingredients: nonEmpty(raw.Ingredients),
		Steps:       nonEmpty(raw.Steps),
	}
	if r.IsEmpty() {
		return nil, nil
	}
	return r, nil
}

func nonEmpty(lines []string) []string {
	var out []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
