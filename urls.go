package larder

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeForLookup returns a canonical key for a source URL.
// Query and fragment are dropped, the host is lowercased and trailing
// slashes are removed from the path. Unparseable input is returned trimmed.
func NormalizeForLookup(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return trimmed
	}
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	return u.String()
}

// BuildEmbedURL returns origin and path with a trailing slash, without query
// or fragment. Returns "" if the URL cannot be parsed.
func BuildEmbedURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	path := u.EscapedPath()
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return u.Scheme + "://" + u.Host + path
}

// IsRemoteURL reports whether s is an absolute http or https URL.
func IsRemoteURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsInstagramURL reports whether the URL is hosted on an Instagram domain.
func IsInstagramURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return IsInstagramHost(u.Hostname())
}

// IsInstagramHost reports whether host belongs to an Instagram registrable
// domain, so subdomains such as m.instagram.com match.
func IsInstagramHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return false
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return false
	}
	return domain == "instagram.com" || domain == "instagr.am"
}

// CanonicalPostURL reduces an Instagram post or reel link to
// https://www.instagram.com/<kind>/<shortcode>/. Other URLs lose their
// query and fragment. Unparseable input is returned unchanged.
func CanonicalPostURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}

	if IsInstagramURL(rawURL) {
		segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
		for _, kind := range []string{"reel", "p"} {
			for i, seg := range segments {
				if seg == kind && i+1 < len(segments) {
					return "https://www.instagram.com/" + kind + "/" + segments[i+1] + "/"
				}
			}
		}
	}

	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
