package pipeline

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// DefaultImageExtensions is the recognized image set. It is the single source
// for both classification and the config default.
var DefaultImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// Class is the classification of an image source.
type Class int

const (
	// ClassRemote is an image that must be fetched and localized.
	ClassRemote Class = iota
	// ClassLocal already points into the media directory.
	ClassLocal
	// ClassNonImage has an extension outside the recognized set.
	ClassNonImage
)

func (c Class) String() string {
	switch c {
	case ClassRemote:
		return "remote"
	case ClassLocal:
		return "local"
	case ClassNonImage:
		return "non-image"
	default:
		return "unknown"
	}
}

// Classifier assigns exactly one Class to an image source.
type Classifier struct {
	mediaPrefix string
	extensions  map[string]struct{}
}

// NewClassifier creates a classifier for the given media directory.
// A nil or empty extension list selects DefaultImageExtensions.
func NewClassifier(mediaDir string, extensions []string) *Classifier {
	if len(extensions) == 0 {
		extensions = DefaultImageExtensions
	}

	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[NormalizeExtension(ext)] = struct{}{}
	}

	var prefix string
	if dir := NormalizeMediaDir(mediaDir); dir != "" {
		prefix = EscapeDestination(dir)
	}

	return &Classifier{mediaPrefix: prefix, extensions: set}
}

// Classify returns the class of source. Local wins over non-image so that a
// rewritten reference is never reconsidered.
func (c *Classifier) Classify(source string) Class {
	if c.IsLocal(source) {
		return ClassLocal
	}
	if !c.IsImage(source) {
		return ClassNonImage
	}
	return ClassRemote
}

// IsLocal reports whether source, once escaped, lives under the media directory.
func (c *Classifier) IsLocal(source string) bool {
	if c.mediaPrefix == "" || source == "" {
		return false
	}
	if c.hasMediaPrefix(EscapeDestination(source)) {
		return true
	}
	if strings.Contains(source, "://") {
		return false
	}
	return c.hasMediaPrefix(EscapeDestination(path.Clean(filepath.ToSlash(source))))
}

func (c *Classifier) hasMediaPrefix(escaped string) bool {
	if !strings.HasPrefix(escaped, c.mediaPrefix) {
		return false
	}
	rest := escaped[len(c.mediaPrefix):]
	return rest == "" || rest[0] == '/' || strings.HasSuffix(c.mediaPrefix, "/")
}

// IsImage reports whether the path component of source ends with a
// recognized image extension (case-insensitive).
func (c *Classifier) IsImage(source string) bool {
	ext := strings.ToLower(URLExtension(source))
	if ext == "" {
		return false
	}
	_, ok := c.extensions[ext]
	return ok
}

// URLExtension returns the extension of the URL's path component, dot
// included. Query and fragment never contribute. Returns "" when the path
// has no extension.
func URLExtension(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
		if u.Opaque != "" {
			p = u.Opaque
		}
	} else if i := strings.IndexAny(raw, "?#"); i >= 0 {
		p = raw[:i]
	}
	return path.Ext(p)
}

// NormalizeExtension lowercases ext and guarantees a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// NormalizeMediaDir converts separators to '/' and cleans the path, so
// "media/", "./media" and "media" all produce the same prefix.
func NormalizeMediaDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return ""
	}
	return path.Clean(filepath.ToSlash(dir))
}
