package mdlocal

import (
	"io"
	"strings"

	"github.com/alnah/go-mdlocal/internal/pipeline"
)

// DefaultImageExtensions lists the extensions treated as images when no
// custom set is configured.
var DefaultImageExtensions = pipeline.DefaultImageExtensions

// Input describes one file rewrite.
type Input struct {
	InputPath  string // Markdown source, must exist
	OutputPath string // destination checked for existence, written by the caller
	MediaDir   string // asset directory, created if absent
	Overwrite  bool   // allow an existing OutputPath
}

// Validate checks that required fields are present.
func (in Input) Validate() error {
	if strings.TrimSpace(in.MediaDir) == "" {
		return ErrEmptyMediaDir
	}
	return nil
}

// Class is the classification of an image source.
type Class = pipeline.Class

// Classes.
const (
	ClassRemote   = pipeline.ClassRemote
	ClassLocal    = pipeline.ClassLocal
	ClassNonImage = pipeline.ClassNonImage
)

// Shape identifies the Markdown construct of a reference.
type Shape = pipeline.Shape

// Shapes.
const (
	ShapePlain   = pipeline.ShapePlain
	ShapeWrapped = pipeline.ShapeWrapped
)

// Outcome is what happened to a reference during a rewrite.
type Outcome int

const (
	// OutcomeUnchanged: local or non-image, nothing attempted.
	OutcomeUnchanged Outcome = iota
	// OutcomeFetched: downloaded during this run and rewritten.
	OutcomeFetched
	// OutcomeCached: asset already on disk, rewritten without a fetch.
	OutcomeCached
	// OutcomeFailed: fetch failed, reference left with its remote URL.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeFetched:
		return "fetched"
	case OutcomeCached:
		return "cached"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reference reports how one image reference was handled.
type Reference struct {
	Alt         string
	Source      string
	Target      string // wrapper target, empty for plain images
	Shape       Shape
	Class       Class
	Outcome     Outcome
	LocalPath   string // filesystem path of the asset, set when localized
	Destination string // escaped Markdown destination, set when localized
	Err         error  // fetch error, set when Outcome is OutcomeFailed
}

// Localized reports whether the reference now points to a local asset.
func (r Reference) Localized() bool {
	return r.Outcome == OutcomeFetched || r.Outcome == OutcomeCached
}

// Result holds the rewritten document and a per-reference report.
type Result struct {
	Markdown   string
	References []Reference

	Fetched int // assets downloaded
	Cached  int // references served from an existing asset
	Failed  int // references left remote after a failed fetch
	Skipped int // local and non-image references
}

// Option configures a Localizer.
type Option func(*Localizer)

// WithFetcher replaces the HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(l *Localizer) {
		if f != nil {
			l.fetcher = f
		}
	}
}

// WithFileSystem replaces the OS filesystem.
func WithFileSystem(fs FileSystem) Option {
	return func(l *Localizer) {
		if fs != nil {
			l.fs = fs
		}
	}
}

// WithImageExtensions sets the recognized image extensions.
// An empty list keeps DefaultImageExtensions.
func WithImageExtensions(exts []string) Option {
	return func(l *Localizer) {
		if len(exts) > 0 {
			l.extensions = exts
		}
	}
}

// WithRefetch downloads assets again even when a cached file exists.
func WithRefetch(refetch bool) Option {
	return func(l *Localizer) {
		l.refetch = refetch
	}
}

// WithProgress sets the writer receiving one line per fetch attempt.
func WithProgress(w io.Writer) Option {
	return func(l *Localizer) {
		if w != nil {
			l.progress = w
		}
	}
}

// WithWarnings sets the writer receiving one line per failed fetch.
func WithWarnings(w io.Writer) Option {
	return func(l *Localizer) {
		if w != nil {
			l.warnings = w
		}
	}
}
