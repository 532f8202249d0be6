package fs

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/larder"
)

// Ensure ImageStore implements larder.ImageStore at compile time.
var _ larder.ImageStore = (*ImageStore)(nil)

// DefaultPublicDir is the directory served as the site root.
const DefaultPublicDir = "public"

// DefaultImageDir is where cached recipe images are written.
var DefaultImageDir = filepath.Join(DefaultPublicDir, "images", "recipes")

// ImageStore keeps cached images as <slug><ext> files in one directory.
// Public paths are computed relative to publicDir.
type ImageStore struct {
	dir       string
	publicDir string
}

// NewImageStore creates an ImageStore writing into dir.
func NewImageStore(dir, publicDir string) *ImageStore {
	return &ImageStore{dir: dir, publicDir: publicDir}
}

// Path returns the file path for slug with extension ext.
func (s *ImageStore) Path(slug, ext string) string {
	return filepath.Join(s.dir, slug+ext)
}

// Find returns the first existing file for slug, trying every accepted
// image extension.
func (s *ImageStore) Find(slug string) (string, bool) {
	for _, ext := range larder.AcceptedImageExtensions {
		p := s.Path(slug, ext)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// Save writes data as slug+ext. A file already holding the same bytes is
// left untouched and written is false. Files for slug under other
// extensions are not removed.
func (s *ImageStore) Save(slug, ext string, data []byte) (string, bool, error) {
	p := s.Path(slug, ext)
	if same(p, data) {
		return p, false, nil
	}
	if err := writeFileAtomic(p, data); err != nil {
		return "", false, err
	}
	return p, true, nil
}

// PublicPath maps a file path below the public directory to its URL path,
// e.g. public/images/recipes/soup.png → /images/recipes/soup.png.
// Returns "" for paths outside the public directory.
func (s *ImageStore) PublicPath(p string) string {
	root, err := filepath.Abs(s.publicDir)
	if err != nil {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return "/" + filepath.ToSlash(rel)
}

// LocalPath maps a URL path such as /images/recipes/soup.png back to its
// file below the public directory. Returns "" for anything else.
func (s *ImageStore) LocalPath(publicPath string) string {
	if !strings.HasPrefix(publicPath, "/") || strings.HasPrefix(publicPath, "//") {
		return ""
	}
	clean := strings.TrimPrefix(path.Clean(publicPath), "/")
	if clean == "" {
		return ""
	}
	return filepath.Join(s.publicDir, filepath.FromSlash(clean))
}

func same(p string, data []byte) bool {
	info, err := os.Stat(p)
	if err != nil || info.Size() != int64(len(data)) {
		return false
	}
	existing, err := os.ReadFile(p)
	if err != nil {
		return false
	}
	return xxhash.Sum64(existing) == xxhash.Sum64(data)
}
