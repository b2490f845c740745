package highlight

import (
	"sort"

	"github.com/jeduden/notemark/internal/lint"
)

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in r.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether r covers no bytes.
func (r Range) Empty() bool { return r.End <= r.Start }

// Overlaps reports whether r and o share at least one byte.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Intersect returns the bytes shared by r and o. The result is empty when
// they do not overlap.
func (r Range) Intersect(o Range) Range {
	out := Range{Start: max(r.Start, o.Start), End: min(r.End, o.End)}
	if out.End < out.Start {
		out.End = out.Start
	}
	return out
}

// Header is an ATX heading line with its level (1-6).
type Header struct {
	Range Range
	Level int
}

// Ranges holds every construct the tagger found, grouped by style. Each
// list is sorted by start offset.
type Ranges struct {
	Code             []Range
	Bold             []Range
	Italic           []Range
	BoldItalic       []Range
	Strikethrough    []Range
	Underline        []Range
	Highlight        []Range
	Headers          []Header
	Markers          []Range
	Links            []Range
	FencedCodeInfo   []Range
	CodeBlockContent []Range
}

// Without returns a copy of rs with every entry overlapping r removed.
func (rs Ranges) Without(r Range) Ranges {
	if r.Empty() {
		return rs
	}
	var hs []Header
	for _, h := range rs.Headers {
		if !h.Range.Overlaps(r) {
			hs = append(hs, h)
		}
	}
	return Ranges{
		Code:             drop(rs.Code, r),
		Bold:             drop(rs.Bold, r),
		Italic:           drop(rs.Italic, r),
		BoldItalic:       drop(rs.BoldItalic, r),
		Strikethrough:    drop(rs.Strikethrough, r),
		Underline:        drop(rs.Underline, r),
		Highlight:        drop(rs.Highlight, r),
		Headers:          hs,
		Markers:          drop(rs.Markers, r),
		Links:            drop(rs.Links, r),
		FencedCodeInfo:   drop(rs.FencedCodeInfo, r),
		CodeBlockContent: drop(rs.CodeBlockContent, r),
	}
}

func drop(in []Range, r Range) []Range {
	var out []Range
	for _, x := range in {
		if !x.Overlaps(r) {
			out = append(out, x)
		}
	}
	return out
}

// PropertiesRange returns the properties block at the start of text,
// delimiters included.
func PropertiesRange(text string) (Range, bool) {
	n := lint.FrontMatterLen([]byte(text))
	if n == 0 {
		return Range{}, false
	}
	return Range{Start: 0, End: n}, true
}

func sortRanges(rs []Range) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Start != rs[j].Start {
			return rs[i].Start < rs[j].Start
		}
		return rs[i].End < rs[j].End
	})
}
