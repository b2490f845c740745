package lint

import (
	"sort"
	"strings"
)

// RegionKind identifies how a code region was delimited.
type RegionKind int

// Region kinds.
const (
	Fenced RegionKind = iota
	Backtick
	Quote
)

// String returns the lower-case name of the kind.
func (k RegionKind) String() string {
	switch k {
	case Fenced:
		return "fenced"
	case Backtick:
		return "backtick"
	case Quote:
		return "quote"
	}
	return "unknown"
}

// CodeRegion is a half-open byte range [Start, End) of verbatim text. For
// fenced blocks the range runs from the start of the opening fence line to
// the end of the closing fence line (newline excluded).
type CodeRegion struct {
	Start int
	End   int
	Kind  RegionKind
}

// Contains reports whether offset lies inside r.
func (r CodeRegion) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Segment is a run of source text outside every code region. Offset is the
// position of Text[0] in the full source.
type Segment struct {
	Offset int
	Text   string
}

// CodeRegions returns the fenced blocks and inline code spans of text,
// sorted by start offset. Regions never overlap. A fence that is opened but
// never closed produces no region.
func CodeRegions(text string) []CodeRegion {
	regions := fencedRegions(text)
	regions = append(regions, inlineRegions(text, regions)...)
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Start < regions[j].Start
	})
	return regions
}

// IsEscaped reports whether the byte at index i is preceded by an odd
// number of consecutive backslashes.
func IsEscaped(text string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// InRegion reports whether offset falls inside any of the sorted regions.
func InRegion(regions []CodeRegion, offset int) bool {
	i := sort.Search(len(regions), func(i int) bool {
		return regions[i].End > offset
	})
	return i < len(regions) && regions[i].Contains(offset)
}

// NonCodeSegments returns the parts of text not covered by regions, each
// tagged with its offset in text. regions must be sorted.
func NonCodeSegments(text string, regions []CodeRegion) []Segment {
	var segs []Segment
	pos := 0
	for _, r := range regions {
		if r.Start > pos {
			segs = append(segs, Segment{Offset: pos, Text: text[pos:r.Start]})
		}
		if r.End > pos {
			pos = r.End
		}
	}
	if pos < len(text) {
		segs = append(segs, Segment{Offset: pos, Text: text[pos:]})
	}
	return segs
}

// fencedRegions scans text line by line. A line whose trimmed content
// starts with three backticks toggles the in-fence state.
func fencedRegions(text string) []CodeRegion {
	var regions []CodeRegion
	open := -1
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		end := offset + len(line)
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if open < 0 {
				open = offset
			} else {
				regions = append(regions, CodeRegion{Start: open, End: end, Kind: Fenced})
				open = -1
			}
		}
		offset = end + 1
	}
	return regions
}

// inlineRegions finds backtick and single-quote spans outside the fenced
// regions. Spans never cross a line break.
func inlineRegions(text string, fenced []CodeRegion) []CodeRegion {
	var regions []CodeRegion
	next := 0
	i := 0
	for i < len(text) {
		if next < len(fenced) && i >= fenced[next].Start {
			if fenced[next].End > i {
				i = fenced[next].End
			}
			next++
			continue
		}

		switch text[i] {
		case '`':
			if IsEscaped(text, i) {
				i++
				continue
			}
			n := runLength(text, i, '`')
			if end, ok := closingRun(text, i+n, lineEnd(text, i), '`', n); ok {
				regions = append(regions, CodeRegion{Start: i, End: end, Kind: Backtick})
				i = end
				continue
			}
			i += n
		case '\'':
			if !IsEscaped(text, i) {
				if j := closingQuote(text, i+1, lineEnd(text, i)); j >= 0 {
					regions = append(regions, CodeRegion{Start: i, End: j + 1, Kind: Quote})
					i = j + 1
					continue
				}
			}
			i++
		default:
			i++
		}
	}
	return regions
}

// closingRun finds the first unescaped run of exactly n bytes c in
// text[from:limit] and returns the offset just past it.
func closingRun(text string, from, limit int, c byte, n int) (int, bool) {
	for j := from; j < limit; {
		if text[j] != c {
			j++
			continue
		}
		m := runLength(text, j, c)
		if m == n && !IsEscaped(text, j) {
			return j + m, true
		}
		j += m
	}
	return 0, false
}

func closingQuote(text string, from, limit int) int {
	for j := from; j < limit; j++ {
		if text[j] == '\'' && !IsEscaped(text, j) {
			return j
		}
	}
	return -1
}

func runLength(text string, i int, c byte) int {
	n := 0
	for i+n < len(text) && text[i+n] == c {
		n++
	}
	return n
}

// lineEnd returns the offset of the newline ending the line that holds i,
// or len(text) for the last line.
func lineEnd(text string, i int) int {
	if idx := strings.IndexByte(text[i:], '\n'); idx >= 0 {
		return i + idx
	}
	return len(text)
}
