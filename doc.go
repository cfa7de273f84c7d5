// Package mdlocal rewrites Markdown documents so that remote images point to
// locally cached copies.
//
// # Quick Start
//
//	loc := mdlocal.NewLocalizer()
//
//	result, err := loc.Localize(ctx, mdlocal.Input{
//	    InputPath:  "notes.md",
//	    OutputPath: "notes.local.md",
//	    MediaDir:   "media",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("notes.local.md", []byte(result.Markdown), 0644)
//
// Localize only checks the output path; persisting result.Markdown is left
// to the caller.
//
// # Rewriting Rules
//
// Two shapes are recognized, on a single line each:
//
//	![alt](src)               plain image
//	[![alt](src)](target)     image wrapped in a link
//
// Wrapped images are scanned first; a plain match inside a wrapper is never
// processed on its own. Each source is classified once:
//
//   - local: already under the media directory, left as is
//   - non-image: extension outside the image set, left as is
//   - remote: fetched into the media directory and rewritten
//
// A remote image is stored under DeriveFilename(src), a SHA-256 hex digest
// of the URL plus its extension. Running Localize again on its own output is
// a no-op because every rewritten source is then local.
//
// A wrapper whose target equals the image URL collapses to a plain image;
// any other target is preserved.
//
// # Failures
//
// Pre-flight problems (ErrInputNotFound, ErrOutputExists, ErrEmptyMediaDir)
// and storage failures (ErrStorage) are returned as errors. A failed fetch is
// not: the reference keeps its remote URL and the failure is recorded in the
// Result.
//
// # Configuration
//
// Use functional options to swap capabilities or tune behavior:
//
//	loc := mdlocal.NewLocalizer(
//	    mdlocal.WithFetcher(mdlocal.NewHTTPFetcher(mdlocal.WithFetchTimeout(30*time.Second))),
//	    mdlocal.WithImageExtensions([]string{".png", ".avif"}),
//	    mdlocal.WithRefetch(true),
//	    mdlocal.WithProgress(os.Stdout),
//	)
package mdlocal
