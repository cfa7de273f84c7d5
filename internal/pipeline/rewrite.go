package pipeline

import (
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark/util"
)

// parenEscaper encodes the characters that would end a destination early
// when the rewritten document is scanned again.
var parenEscaper = strings.NewReplacer("(", "%28", ")", "%29")

// EscapeDestination percent-encodes dest for use as a Markdown link
// destination. Existing %XX sequences are kept, so escaping is idempotent.
func EscapeDestination(dest string) string {
	return parenEscaper.Replace(string(util.URLEscape([]byte(dest), false)))
}

// LocalDestination returns the escaped Markdown destination of filename
// inside mediaDir, always with '/' separators.
func LocalDestination(mediaDir, filename string) string {
	dir := NormalizeMediaDir(mediaDir)
	if dir == "" || dir == "." {
		return EscapeDestination("./" + filename)
	}
	return EscapeDestination(path.Join(dir, filename))
}

// Render returns the replacement text for ref once its image lives at dest.
// The wrapper is dropped when it pointed at the image itself.
func Render(ref ImageRef, dest string) string {
	if ref.Shape != ShapeWrapped || ref.Target == ref.Source {
		return "![" + ref.Alt + "](" + dest + ")"
	}
	return "[![" + ref.Alt + "](" + dest + ")](" + ref.Target + ")"
}

// Replacement swaps content[Start:End] for Text.
type Replacement struct {
	Start int
	End   int
	Text  string
}

// Splice applies replacements by position. Replacements must not overlap;
// they may be given in any order. Text outside the spans is copied verbatim.
func Splice(content string, reps []Replacement) string {
	if len(reps) == 0 {
		return content
	}

	sorted := make([]Replacement, len(reps))
	copy(sorted, reps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	b.Grow(len(content))

	last := 0
	for _, r := range sorted {
		b.WriteString(content[last:r.Start])
		b.WriteString(r.Text)
		last = r.End
	}
	b.WriteString(content[last:])

	return b.String()
}
