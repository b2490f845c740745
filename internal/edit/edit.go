// Package edit implements the text mutations behind editor formatting
// commands. Every function takes the text and the current selection and
// returns the new text with the selection moved to cover the same content.
package edit

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jeduden/notemark/internal/highlight"
)

// Inline delimiters toggled by Wrap.
const (
	Bold          = "**"
	Italic        = "_"
	Strikethrough = "~~"
	Underline     = "++"
	Highlight     = "=="
	Code          = "`"
)

// Range is a selection. Start == End is a cursor.
type Range = highlight.Range

var headerPrefix = regexp.MustCompile(`^(#{1,6})(?:[ \t]+|$)`)

// Wrap surrounds the selection with delim, or removes delim when the
// selection is already wrapped (either just outside or at its own edges).
func Wrap(text string, sel Range, delim string) (string, Range) {
	sel = normalize(text, sel)
	n := len(delim)
	if n == 0 {
		return text, sel
	}
	if sel.Start >= n && sel.End+n <= len(text) &&
		text[sel.Start-n:sel.Start] == delim && text[sel.End:sel.End+n] == delim {
		out := text[:sel.Start-n] + text[sel.Start:sel.End] + text[sel.End+n:]
		return out, Range{Start: sel.Start - n, End: sel.End - n}
	}
	inner := text[sel.Start:sel.End]
	if len(inner) >= 2*n && strings.HasPrefix(inner, delim) && strings.HasSuffix(inner, delim) {
		out := text[:sel.Start] + inner[n:len(inner)-n] + text[sel.End:]
		return out, Range{Start: sel.Start, End: sel.End - 2*n}
	}
	out := text[:sel.Start] + delim + inner + delim + text[sel.End:]
	return out, Range{Start: sel.Start + n, End: sel.End + n}
}

// Header makes the cursor line an ATX header of the given level, replacing
// any existing prefix. Applying the line's current level, or level 0,
// removes the prefix.
func Header(text string, sel Range, level int) (string, Range, error) {
	if level < 0 || level > 6 {
		return text, sel, fmt.Errorf("header level %d out of range 0-6", level)
	}
	sel = normalize(text, sel)
	cursor := Range{Start: sel.Start, End: sel.Start}
	out, moved := editLines(text, sel, cursor, func(line string) (int, string) {
		remove, current := 0, 0
		if m := headerPrefix.FindStringSubmatchIndex(line); m != nil {
			remove, current = m[1], m[3]-m[2]
		}
		if level == 0 || level == current {
			return remove, ""
		}
		return remove, strings.Repeat("#", level) + " "
	})
	return out, moved, nil
}

// Quote toggles a "> " prefix on every selected line. When all selected
// lines are already quoted the prefix is removed; otherwise it is added.
func Quote(text string, sel Range) (string, Range) {
	sel = normalize(text, sel)
	first, last := highlight.AffectedLines(text, sel)
	lines := strings.Split(text, "\n")
	quoted := true
	for _, l := range lines[first : last+1] {
		if !strings.HasPrefix(l, ">") {
			quoted = false
			break
		}
	}
	return editLines(text, sel, sel, func(line string) (int, string) {
		if !quoted {
			return 0, "> "
		}
		if strings.HasPrefix(line, "> ") {
			return 2, ""
		}
		return 1, ""
	})
}

// Indent adds a tab at the start of every selected line.
func Indent(text string, sel Range) (string, Range) {
	sel = normalize(text, sel)
	return editLines(text, sel, sel, func(string) (int, string) { return 0, "\t" })
}

// Outdent removes one leading tab from every selected line that has one.
func Outdent(text string, sel Range) (string, Range) {
	sel = normalize(text, sel)
	return editLines(text, sel, sel, func(line string) (int, string) {
		if strings.HasPrefix(line, "\t") {
			return 1, ""
		}
		return 0, ""
	})
}

// editLines replaces a prefix of each line touched by target. The edit
// function reports how many bytes to remove from the line start and what
// to insert in their place. sel is remapped onto the new text; an offset
// inside a removed prefix moves to the end of the inserted one.
func editLines(text string, sel, target Range, edit func(line string) (remove int, add string)) (string, Range) {
	first, last := highlight.AffectedLines(text, target)
	lines := strings.Split(text, "\n")
	starts := make([]int, len(lines))
	removes := make([]int, len(lines))
	adds := make([]int, len(lines))

	var b strings.Builder
	off := 0
	for i, l := range lines {
		starts[i] = off
		off += len(l) + 1
		if i >= first && i <= last {
			r, a := edit(l)
			removes[i], adds[i] = r, len(a)
			b.WriteString(a)
			b.WriteString(l[r:])
		} else {
			b.WriteString(l)
		}
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}

	move := func(offset int) int {
		i := sort.SearchInts(starts, offset+1) - 1
		delta := 0
		for j := 0; j < i; j++ {
			delta += adds[j] - removes[j]
		}
		rel := max(offset-starts[i], removes[i])
		return starts[i] + delta + adds[i] + rel - removes[i]
	}
	return b.String(), Range{Start: move(sel.Start), End: move(sel.End)}
}

// normalize clamps sel to text and orders its ends.
func normalize(text string, sel Range) Range {
	s := max(0, min(sel.Start, len(text)))
	e := max(0, min(sel.End, len(text)))
	if e < s {
		s, e = e, s
	}
	return Range{Start: s, End: e}
}
