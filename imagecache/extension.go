package imagecache

import (
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/fwojciec/larder"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultExtension is used when nothing else identifies an image type.
const DefaultExtension = ".jpg"

// Extension picks the file extension for an image downloaded from rawURL.
// The URL path wins when it names an accepted image extension, then the
// Content-Type header, then the sniffed bytes.
func Extension(rawURL, contentType string, data []byte) string {
	if ext := URLExtension(rawURL); ext != "" {
		return ext
	}

	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if m := mimetype.Lookup(mediaType); m != nil {
		if ext := accepted(m.Extension()); ext != "" {
			return ext
		}
	}

	if len(data) > 0 {
		if ext := accepted(mimetype.Detect(data).Extension()); ext != "" {
			return ext
		}
	}
	return DefaultExtension
}

// URLExtension returns the accepted image extension of the URL path, with
// .jpeg reported as .jpg. Returns "" when the path has none.
func URLExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return accepted(path.Ext(u.Path))
}

func accepted(ext string) string {
	ext = strings.ToLower(ext)
	if ext == ".jpeg" || ext == ".jpe" {
		return ".jpg"
	}
	if slices.Contains(larder.AcceptedImageExtensions, ext) {
		return ext
	}
	return ""
}
