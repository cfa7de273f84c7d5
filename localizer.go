package mdlocal

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alnah/go-mdlocal/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ Fetcher    = (*HTTPFetcher)(nil)
	_ FileSystem = OSFileSystem{}
)

// Localizer rewrites remote image references to cached local copies.
// References are handled one at a time in scan order; a Localizer holds no
// per-run state and may be reused.
type Localizer struct {
	fetcher    Fetcher
	fs         FileSystem
	extensions []string
	refetch    bool
	progress   io.Writer
	warnings   io.Writer
}

// NewLocalizer creates a Localizer using HTTP and the OS filesystem.
func NewLocalizer(opts ...Option) *Localizer {
	l := &Localizer{
		fetcher:    NewHTTPFetcher(),
		fs:         OSFileSystem{},
		extensions: DefaultImageExtensions,
		progress:   io.Discard,
		warnings:   io.Discard,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Localize checks preconditions, reads the input file and rewrites it.
// The output file is only checked, never written.
func (l *Localizer) Localize(ctx context.Context, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !l.fs.FileExists(in.InputPath) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, in.InputPath)
	}
	if l.fs.FileExists(in.OutputPath) && !in.Overwrite {
		return nil, fmt.Errorf("%w: %s", ErrOutputExists, in.OutputPath)
	}

	data, err := l.fs.ReadFile(in.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, in.InputPath, err)
	}

	return l.LocalizeMarkdown(ctx, string(data), in.MediaDir)
}

// LocalizeMarkdown rewrites an in-memory document. The media directory is
// created if absent.
func (l *Localizer) LocalizeMarkdown(ctx context.Context, markdown, mediaDir string) (*Result, error) {
	if err := (Input{MediaDir: mediaDir}).Validate(); err != nil {
		return nil, err
	}
	if err := l.fs.MkdirAll(mediaDir); err != nil {
		return nil, fmt.Errorf("%w: creating media directory %s: %v", ErrStorage, mediaDir, err)
	}

	r := &run{
		Localizer:  l,
		ctx:        ctx,
		mediaDir:   mediaDir,
		classifier: pipeline.NewClassifier(mediaDir, l.extensions),
		assets:     make(map[string]error),
	}
	return r.rewrite(markdown)
}

// run carries the state of a single rewrite.
type run struct {
	*Localizer
	ctx        context.Context
	mediaDir   string
	classifier *pipeline.Classifier

	// assets maps each remote URL handled so far to its fetch error (nil on success).
	assets map[string]error
}

func (r *run) rewrite(markdown string) (*Result, error) {
	refs := pipeline.FindImageRefs(markdown)
	result := &Result{References: make([]Reference, 0, len(refs))}
	reps := make([]pipeline.Replacement, 0, len(refs))

	for _, ref := range refs {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}

		rep := Reference{
			Alt:    ref.Alt,
			Source: ref.Source,
			Target: ref.Target,
			Shape:  ref.Shape,
			Class:  r.classifier.Classify(ref.Source),
		}

		if rep.Class != ClassRemote {
			rep.Outcome = OutcomeUnchanged
			result.Skipped++
			result.References = append(result.References, rep)
			continue
		}

		filename := DeriveFilename(ref.Source)
		localPath := filepath.Join(r.mediaDir, filename)

		outcome, fetchErr, err := r.materialize(ref.Source, localPath)
		if err != nil {
			return nil, err
		}

		rep.Outcome = outcome
		switch outcome {
		case OutcomeFailed:
			rep.Err = fetchErr
			result.Failed++
		case OutcomeFetched:
			result.Fetched++
		case OutcomeCached:
			result.Cached++
		}

		if rep.Localized() {
			rep.LocalPath = localPath
			rep.Destination = pipeline.LocalDestination(r.mediaDir, filename)
			reps = append(reps, pipeline.Replacement{
				Start: ref.Start,
				End:   ref.End,
				Text:  pipeline.Render(ref, rep.Destination),
			})
		}

		result.References = append(result.References, rep)
	}

	result.Markdown = pipeline.Splice(markdown, reps)
	return result, nil
}

// materialize makes sure the asset for source exists at localPath.
// A fetch failure is reported through fetchErr; err is fatal (storage or
// cancellation).
func (r *run) materialize(source, localPath string) (outcome Outcome, fetchErr, err error) {
	if prev, seen := r.assets[source]; seen {
		if prev != nil {
			return OutcomeFailed, prev, nil
		}
		return OutcomeCached, nil, nil
	}

	if !r.refetch && r.fs.FileExists(localPath) {
		r.assets[source] = nil
		return OutcomeCached, nil, nil
	}

	fmt.Fprintf(r.progress, "Downloading: %s\n", source)

	data, fetchErr := r.fetcher.Fetch(r.ctx, source)
	if fetchErr != nil {
		if ctxErr := r.ctx.Err(); ctxErr != nil {
			return 0, nil, ctxErr
		}
		fmt.Fprintf(r.warnings, "Warning: %s left unchanged: %v\n", source, fetchErr)
		r.assets[source] = fetchErr
		return OutcomeFailed, fetchErr, nil
	}

	if err := r.fs.WriteFile(localPath, data); err != nil {
		return 0, nil, fmt.Errorf("%w: writing %s: %v", ErrStorage, localPath, err)
	}

	r.assets[source] = nil
	return OutcomeFetched, nil, nil
}
