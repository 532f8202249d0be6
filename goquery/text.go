package goquery

import (
	"html"
	"regexp"
	"strings"
)

var (
	breakRe = regexp.MustCompile(`(?i)<br\s*/?>|</p\s*>|</li\s*>`)
	tagRe   = regexp.MustCompile(`<[^>]*>`)
)

// cleanLines strips markup from s, decodes entities and returns the
// non-empty lines with inner whitespace collapsed.
func cleanLines(s string) []string {
	s = breakRe.ReplaceAllString(s, "\n")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r", "\n"), "\n") {
		if line = collapse(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// cleanText is cleanLines joined into a single line.
func cleanText(s string) string {
	return strings.Join(cleanLines(s), " ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// appendUnique appends values not already present in seen.
func appendUnique(dst []string, seen map[string]bool, values ...string) []string {
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		dst = append(dst, v)
	}
	return dst
}
