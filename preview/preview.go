// Package preview finds the preview image a page declares for link sharing.
package preview

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

// MaxScanBytes bounds how much of a page is scanned for meta tags.
const MaxScanBytes = 200_000

// metaCandidate is a meta attribute/value pair naming a preview image.
type metaCandidate struct {
	attr  string
	value string
}

// Candidates in priority order.
var metaCandidates = []metaCandidate{
	{"property", "og:image:secure_url"},
	{"property", "og:image:url"},
	{"property", "og:image"},
	{"name", "og:image"},
	{"property", "twitter:image"},
	{"name", "twitter:image"},
	{"property", "twitter:image:src"},
	{"name", "twitter:image:src"},
	{"itemprop", "image"},
	{"name", "thumbnail"},
}

var (
	metaRes   = compileMetaPatterns()
	contentRe = regexp.MustCompile(`(?is)content\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	linkRe    = regexp.MustCompile(`(?is)<link[^>]*rel\s*=\s*(?:"(?:image_src|thumbnail)"|'(?:image_src|thumbnail)')[^>]*>`)
	hrefRe    = regexp.MustCompile(`(?is)href\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

func compileMetaPatterns() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(metaCandidates))
	for i, c := range metaCandidates {
		v := regexp.QuoteMeta(c.value)
		res[i] = regexp.MustCompile(`(?is)<meta[^>]*` + c.attr + `\s*=\s*(?:"` + v + `"|'` + v + `')[^>]*>`)
	}
	return res
}

// FindImage returns the preview image URL declared by page, resolved against
// baseURL, or "" when none is declared. Only the first MaxScanBytes of the
// page are scanned.
func FindImage(page, baseURL string) string {
	if len(page) > MaxScanBytes {
		page = page[:MaxScanBytes]
	}

	for _, re := range metaRes {
		tag := re.FindString(page)
		if tag == "" {
			continue
		}
		if v := attrValue(contentRe, tag); v != "" {
			return resolve(baseURL, v)
		}
	}

	if tag := linkRe.FindString(page); tag != "" {
		if v := attrValue(hrefRe, tag); v != "" {
			return resolve(baseURL, v)
		}
	}
	return ""
}

// attrValue extracts and entity-decodes the quoted value matched by re.
func attrValue(re *regexp.Regexp, tag string) string {
	m := re.FindStringSubmatch(tag)
	if m == nil {
		return ""
	}
	v := m[1]
	if v == "" {
		v = m[2]
	}
	return html.UnescapeString(strings.TrimSpace(v))
}

// resolve returns ref resolved against base. Unparseable values are
// returned as they are.
func resolve(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
