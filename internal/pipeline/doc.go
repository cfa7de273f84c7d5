// Package pipeline implements the text side of image localization.
//
// The package is pure: it never touches the network or the filesystem.
// It covers:
//   - Scanning Markdown for the two image shapes, wrapped [![alt](src)](target)
//     and plain ![alt](src), with byte spans into the original text
//   - Classifying an image source as already local, non-image or remote
//   - Escaping local paths for use as Markdown link destinations
//   - Rendering replacement references and splicing them by span
//
// Fetching and caching are handled by the root mdlocal package, which feeds
// the outcome of every fetch back into Splice. Keeping the two apart lets the
// rewrite be tested without I/O and keeps the substitution position-aware.
package pipeline
