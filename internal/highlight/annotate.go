package highlight

import (
	"regexp"
	"sort"
	"strings"
)

// Kind names the style a span is painted with.
type Kind int

// Span kinds, in the order their layers are emitted.
const (
	KindCode Kind = iota
	KindCodeBlock
	KindFenceInfo
	KindBold
	KindItalic
	KindBoldItalic
	KindStrikethrough
	KindUnderline
	KindHighlight
	KindLink
	KindStrikeUnderline
	KindHeaderLine
	KindHeader
	KindMarker
	KindMarkerCompact
	KindSearchMatch
	KindCurrentMatch
)

var kindNames = [...]string{
	KindCode:            "code",
	KindCodeBlock:       "code-block",
	KindFenceInfo:       "fence-info",
	KindBold:            "bold",
	KindItalic:          "italic",
	KindBoldItalic:      "bold-italic",
	KindStrikethrough:   "strikethrough",
	KindUnderline:       "underline",
	KindHighlight:       "highlight",
	KindLink:            "link",
	KindStrikeUnderline: "strike-underline",
	KindHeaderLine:      "header-line",
	KindHeader:          "header",
	KindMarker:          "marker",
	KindMarkerCompact:   "marker-compact",
	KindSearchMatch:     "search-match",
	KindCurrentMatch:    "current-match",
}

// String returns the kebab-case name used in themes.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every span kind in emission order.
func Kinds() []Kind {
	ks := make([]Kind, len(kindNames))
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// Span is a styled range. Level is set for header spans only. Where spans
// overlap, later spans take precedence.
type Span struct {
	Range
	Kind  Kind
	Level int
}

// Options controls Annotate.
type Options struct {
	// Selection is the editor selection; a collapsed selection is a cursor.
	Selection Range
	// ReadOnly renders every marker compact.
	ReadOnly bool
	// Search is matched case-insensitively as literal text.
	Search string
	// CurrentMatch indexes the search match styled as current. A negative
	// value marks none.
	CurrentMatch int
}

// Annotate returns the style spans for text. Constructs inside the
// properties block are dropped; markers on the lines touched by the
// selection keep full size unless the text is read-only.
func Annotate(text string, opts Options) []Span {
	rs := Find(text)
	if props, ok := PropertiesRange(text); ok {
		rs = rs.Without(props)
	}

	var spans []Span
	add := func(k Kind, ranges []Range) {
		for _, r := range ranges {
			spans = append(spans, Span{Range: r, Kind: k})
		}
	}

	add(KindCode, rs.Code)
	add(KindCodeBlock, rs.CodeBlockContent)
	add(KindFenceInfo, rs.FencedCodeInfo)
	add(KindBold, rs.Bold)
	add(KindItalic, rs.Italic)
	add(KindBoldItalic, rs.BoldItalic)
	add(KindStrikethrough, rs.Strikethrough)
	add(KindUnderline, rs.Underline)
	add(KindHighlight, rs.Highlight)
	add(KindLink, rs.Links)

	for _, s := range rs.Strikethrough {
		for _, u := range rs.Underline {
			if s.Overlaps(u) {
				spans = append(spans, Span{Range: s.Intersect(u), Kind: KindStrikeUnderline})
			}
		}
	}

	for _, h := range rs.Headers {
		spans = append(spans,
			Span{Range: h.Range, Kind: KindHeaderLine, Level: h.Level},
			Span{Range: headerText(text, h), Kind: KindHeader, Level: h.Level},
		)
	}

	lines := newLineIndex(text)
	first, last := AffectedLines(text, opts.Selection)
	for _, m := range rs.Markers {
		k := KindMarkerCompact
		if !opts.ReadOnly {
			if l := lines.line(m.Start); l >= first && l <= last {
				k = KindMarker
			}
		}
		spans = append(spans, Span{Range: m, Kind: k})
	}

	for i, m := range SearchMatches(text, opts.Search) {
		k := KindSearchMatch
		if i == opts.CurrentMatch {
			k = KindCurrentMatch
		}
		spans = append(spans, Span{Range: m, Kind: k})
	}
	return spans
}

// headerText returns the part of a header line after its hashes and the
// whitespace that follows them.
func headerText(text string, h Header) Range {
	i := h.Range.Start + h.Level
	for i < h.Range.End && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return Range{Start: i, End: h.Range.End}
}

// AffectedLines returns the 0-based first and last lines touched by sel.
// A collapsed selection affects only the cursor line.
func AffectedLines(text string, sel Range) (first, last int) {
	start, end := clamp(sel.Start, len(text)), clamp(sel.End, len(text))
	if end < start {
		start, end = end, start
	}
	lines := newLineIndex(text)
	return lines.line(start), lines.line(end)
}

// SearchMatches returns the non-overlapping case-insensitive occurrences of
// term in text. An empty term, or one that is not valid UTF-8, matches
// nothing.
func SearchMatches(text, term string) []Range {
	if term == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return nil
	}
	var out []Range
	for _, m := range re.FindAllStringIndex(text, -1) {
		out = append(out, Range{Start: m[0], End: m[1]})
	}
	return out
}

func clamp(v, n int) int {
	return max(0, min(v, n))
}

// lineIndex maps byte offsets to 0-based line numbers.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	starts := lineIndex{0}
	for i := strings.IndexByte(text, '\n'); i >= 0; {
		starts = append(starts, starts[len(starts)-1]+i+1)
		i = strings.IndexByte(text[starts[len(starts)-1]:], '\n')
	}
	return starts
}

func (li lineIndex) line(offset int) int {
	return sort.SearchInts(li, offset+1) - 1
}
