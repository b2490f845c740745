package highlight

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jeduden/notemark/internal/lint"
)

var (
	headerPattern = regexp.MustCompile(`^(#{1,6})[ \t]+\S`)
	linkPattern   = regexp.MustCompile(`!?\[[^\]\n]*\]\([^)\n]*\)`)
)

// pairDelim is a symmetric inline delimiter such as "**".
type pairDelim struct {
	mark string
	// intraword delimiters may open and close inside a word.
	intraword bool
	target    func(*Ranges) *[]Range
}

// pairDelims are matched in order; a delimiter consumed by an earlier entry
// is not available to later ones, so "***" wins over "**" and "*".
var pairDelims = []pairDelim{
	{mark: "***", intraword: true, target: func(r *Ranges) *[]Range { return &r.BoldItalic }},
	{mark: "**", intraword: true, target: func(r *Ranges) *[]Range { return &r.Bold }},
	{mark: "*", intraword: true, target: func(r *Ranges) *[]Range { return &r.Italic }},
	{mark: "_", intraword: false, target: func(r *Ranges) *[]Range { return &r.Italic }},
	{mark: "~~", intraword: true, target: func(r *Ranges) *[]Range { return &r.Strikethrough }},
	{mark: "++", intraword: true, target: func(r *Ranges) *[]Range { return &r.Underline }},
	{mark: "==", intraword: true, target: func(r *Ranges) *[]Range { return &r.Highlight }},
}

// finder tracks which bytes are no longer available as delimiters: bytes
// inside code regions, and delimiters already consumed by a match.
type finder struct {
	text    string
	blocked []bool
	out     Ranges
}

// Find returns every styled construct in text. Inline constructs never span
// lines, and nothing inside a code region is tagged except as code.
func Find(text string) Ranges {
	f := &finder{text: text, blocked: make([]bool, len(text))}
	for _, cr := range lint.CodeRegions(text) {
		f.block(cr.Start, cr.End)
		switch cr.Kind {
		case lint.Fenced:
			f.out.Code = append(f.out.Code, Range{Start: cr.Start, End: cr.End})
			f.fenced(cr.Start, cr.End)
		case lint.Backtick:
			f.out.Code = append(f.out.Code, Range{Start: cr.Start, End: cr.End})
			n := countRun(text, cr.Start, '`')
			f.marker(cr.Start, cr.Start+n)
			f.marker(cr.End-n, cr.End)
		}
	}

	f.eachLine(f.header)
	f.eachLine(f.links)
	for _, d := range pairDelims {
		f.eachLine(func(start int, line string) { f.pairs(start, line, d) })
	}

	sortRanges(f.out.Italic)
	sortRanges(f.out.Markers)
	return f.out
}

// eachLine calls fn with the start offset and content of every line, a
// trailing carriage return removed.
func (f *finder) eachLine(fn func(start int, line string)) {
	start := 0
	for start <= len(f.text) {
		end := strings.IndexByte(f.text[start:], '\n')
		if end < 0 {
			end = len(f.text)
		} else {
			end += start
		}
		fn(start, strings.TrimSuffix(f.text[start:end], "\r"))
		start = end + 1
	}
}

func (f *finder) header(start int, line string) {
	if line == "" || f.blocked[start] {
		return
	}
	m := headerPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return
	}
	level := m[3] - m[2]
	f.out.Headers = append(f.out.Headers, Header{
		Range: Range{Start: start, End: start + len(line)},
		Level: level,
	})
	f.marker(start, start+level)
}

func (f *finder) links(start int, line string) {
	for _, m := range linkPattern.FindAllStringIndex(line, -1) {
		s, e := start+m[0], start+m[1]
		if f.blocked[s] || f.blocked[e-1] || lint.IsEscaped(f.text, s) {
			continue
		}
		open := s + 1
		if f.text[s] == '!' {
			open++
		}
		mid := s + strings.Index(f.text[s:e], "](")
		f.out.Links = append(f.out.Links, Range{Start: s, End: e})
		f.marker(s, open)
		f.marker(mid, e)
		// The target is shown verbatim; keep emphasis out of URLs.
		f.block(mid, e)
	}
}

func (f *finder) pairs(start int, line string, d pairDelim) {
	n := len(d.mark)
	for i := 0; i+n <= len(line); {
		if !f.opens(start+i, d) {
			i++
			continue
		}
		j := f.closing(start, line, i+n, d)
		if j < 0 {
			i++
			continue
		}
		s, e := start+i, start+j+n
		target := d.target(&f.out)
		*target = append(*target, Range{Start: s, End: e})
		f.marker(s, s+n)
		f.marker(start+j, e)
		f.block(s, s+n)
		f.block(start+j, e)
		i = j + n
	}
}

// closing returns the line index of the first delimiter after from that
// closes a pair, or -1. The content between must be non-empty.
func (f *finder) closing(start int, line string, from int, d pairDelim) int {
	n := len(d.mark)
	for j := from + 1; j+n <= len(line); j++ {
		pos := start + j
		if !f.free(pos, d.mark) {
			continue
		}
		if prev := runeBefore(f.text, pos); isSpace(prev) || prev == rune(d.mark[0]) {
			continue
		}
		if !d.intraword && isWord(runeAfter(f.text, pos+n)) {
			continue
		}
		return j
	}
	return -1
}

func (f *finder) opens(pos int, d pairDelim) bool {
	if !f.free(pos, d.mark) {
		return false
	}
	next := runeAfter(f.text, pos+len(d.mark))
	if next == utf8.RuneError || isSpace(next) || next == rune(d.mark[0]) {
		return false
	}
	return d.intraword || !isWord(runeBefore(f.text, pos))
}

// free reports whether mark occurs at pos, unescaped and not yet consumed.
func (f *finder) free(pos int, mark string) bool {
	if !strings.HasPrefix(f.text[pos:], mark) || lint.IsEscaped(f.text, pos) {
		return false
	}
	for i := pos; i < pos+len(mark); i++ {
		if f.blocked[i] {
			return false
		}
	}
	return true
}

// fenced records the fence markers, info string and content of the fenced
// block spanning [s, e).
func (f *finder) fenced(s, e int) {
	openEnd := strings.IndexByte(f.text[s:e], '\n') + s
	openLine := strings.TrimSuffix(f.text[s:openEnd], "\r")
	p := s + len(openLine) - len(strings.TrimLeft(openLine, " \t"))
	n := countRun(f.text, p, '`')
	f.marker(p, p+n)

	is, ie := p+n, s+len(openLine)
	for is < ie && isSpace(rune(f.text[is])) {
		is++
	}
	for ie > is && isSpace(rune(f.text[ie-1])) {
		ie--
	}
	if is < ie {
		f.out.FencedCodeInfo = append(f.out.FencedCodeInfo, Range{Start: is, End: ie})
	}

	closeStart := strings.LastIndexByte(f.text[s:e], '\n') + s + 1
	closeLine := f.text[closeStart:e]
	cp := closeStart + len(closeLine) - len(strings.TrimLeft(closeLine, " \t"))
	f.marker(cp, cp+countRun(f.text, cp, '`'))

	cs, ce := openEnd+1, closeStart-1
	if ce > cs && f.text[ce-1] == '\r' {
		ce--
	}
	if cs < ce {
		f.out.CodeBlockContent = append(f.out.CodeBlockContent, Range{Start: cs, End: ce})
	}
}

func (f *finder) marker(s, e int) {
	f.out.Markers = append(f.out.Markers, Range{Start: s, End: e})
}

func (f *finder) block(s, e int) {
	for i := s; i < e; i++ {
		f.blocked[i] = true
	}
}

func countRun(text string, i int, c byte) int {
	n := 0
	for i+n < len(text) && text[i+n] == c {
		n++
	}
	return n
}

func runeAfter(text string, pos int) rune {
	if pos >= len(text) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return r
}

func runeBefore(text string, pos int) rune {
	if pos <= 0 {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return r
}

func isSpace(r rune) bool { return unicode.IsSpace(r) }

func isWord(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
