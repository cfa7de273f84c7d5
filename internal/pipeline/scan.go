package pipeline

import (
	"regexp"
	"sort"
)

// Shape identifies which Markdown construct an image reference was found in.
type Shape int

const (
	// ShapePlain is a bare image: ![alt](src).
	ShapePlain Shape = iota
	// ShapeWrapped is an image inside a hyperlink: [![alt](src)](target).
	ShapeWrapped
)

func (s Shape) String() string {
	switch s {
	case ShapePlain:
		return "plain"
	case ShapeWrapped:
		return "wrapped"
	default:
		return "unknown"
	}
}

// ImageRef is one image reference located in a document.
// Start and End delimit the whole construct in the original text,
// wrapper included for ShapeWrapped.
type ImageRef struct {
	Alt    string
	Source string
	Target string // hyperlink destination, empty for ShapePlain
	Shape  Shape
	Start  int
	End    int
}

// Precompiled patterns. Alt text holds no brackets or newlines and a
// destination holds no parentheses or whitespace, so a match never spans two
// constructs or two lines. Local destinations are written with %28, %29 and
// %20, which keeps rewritten output matchable.
var (
	// [![alt](src)](target)
	wrappedImagePattern = regexp.MustCompile(`\[!\[([^\[\]\n]*)\]\(([^()\s]*)\)\]\(([^()\s]*)\)`)

	// ![alt](src)
	plainImagePattern = regexp.MustCompile(`!\[([^\[\]\n]*)\]\(([^()\s]*)\)`)
)

// FindImageRefs returns every image reference in content.
//
// Wrapped references come first, then plain ones, each group in text order.
// A plain match overlapping a wrapped span is dropped, so the image inside a
// wrapper is reported exactly once whatever happens to it later.
func FindImageRefs(content string) []ImageRef {
	var refs []ImageRef

	for _, m := range wrappedImagePattern.FindAllStringSubmatchIndex(content, -1) {
		refs = append(refs, ImageRef{
			Alt:    content[m[2]:m[3]],
			Source: content[m[4]:m[5]],
			Target: content[m[6]:m[7]],
			Shape:  ShapeWrapped,
			Start:  m[0],
			End:    m[1],
		})
	}
	wrapped := len(refs)

	for _, m := range plainImagePattern.FindAllStringSubmatchIndex(content, -1) {
		if overlapsAny(m[0], m[1], refs[:wrapped]) {
			continue
		}
		refs = append(refs, ImageRef{
			Alt:    content[m[2]:m[3]],
			Source: content[m[4]:m[5]],
			Shape:  ShapePlain,
			Start:  m[0],
			End:    m[1],
		})
	}

	return refs
}

// overlapsAny reports whether [start, end) intersects any span in refs.
// refs are sorted by Start, so a binary search finds the only candidates.
func overlapsAny(start, end int, refs []ImageRef) bool {
	i := sort.Search(len(refs), func(i int) bool { return refs[i].End > start })
	return i < len(refs) && refs[i].Start < end
}
