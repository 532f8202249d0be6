// Package htmltomarkdown converts extracted article HTML to Markdown with
// github.com/JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/larder"
)

// Ensure Converter implements larder.Converter at compile time.
var _ larder.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", larder.Errorf(larder.EINVALID, "empty HTML input")
	}
	return c.conv.ConvertString(html)
}

var (
	headingRe  = regexp.MustCompile(`^#{1,6}\s+`)
	bulletRe   = regexp.MustCompile(`^[*+]\s+`)
	imageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	emphasisRe = regexp.MustCompile(`\*\*|__`)
	escapeRe   = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]()#+\\-.!])")
)

// PlainLines reduces Markdown to text lines: headings lose their markers,
// bullets become "- ", links keep their text and images are dropped.
// Numbered list items keep their numbers. Blank lines are removed.
func PlainLines(markdown string) []string {
	var lines []string
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		line = headingRe.ReplaceAllString(line, "")
		line = bulletRe.ReplaceAllString(line, "- ")
		line = imageRe.ReplaceAllString(line, "")
		line = linkRe.ReplaceAllString(line, "$1")
		line = emphasisRe.ReplaceAllString(line, "")
		line = escapeRe.ReplaceAllString(line, "$1")
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
