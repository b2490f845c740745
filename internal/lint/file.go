package lint

import (
	"bytes"
	"sort"
	"sync"

	"github.com/rivo/uniseg"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// File holds a parsed Markdown document and its source.
//
// When the file was built with front matter stripping, Source holds the
// body only; FrontMatter holds the stripped block and LineOffset/ByteOffset
// record how far the body is shifted within the full source.
type File struct {
	Path        string
	Source      []byte
	Lines       [][]byte
	LineStarts  []int
	Regions     []CodeRegion
	FrontMatter []byte
	LineOffset  int
	ByteOffset  int

	parseOnce sync.Once
	root      ast.Node
}

// NewFile splits source into lines and code regions and returns a File.
// The Markdown AST is built on first use; see AST.
func NewFile(path string, source []byte) (*File, error) {
	lines := bytes.Split(source, []byte("\n"))
	starts := make([]int, len(lines))
	offset := 0
	for i, l := range lines {
		starts[i] = offset
		offset += len(l) + 1
	}

	return &File{
		Path:       path,
		Source:     source,
		Lines:      lines,
		LineStarts: starts,
		Regions:    CodeRegions(string(source)),
	}, nil
}

// AST returns the goldmark document for Source, parsing it on the first
// call.
func (f *File) AST() ast.Node {
	f.parseOnce.Do(func() {
		f.root = goldmark.DefaultParser().Parse(text.NewReader(f.Source))
	})
	return f.root
}

// NewFileFromSource builds a File from source, removing a leading
// properties block first when stripFrontMatter is true.
func NewFileFromSource(path string, source []byte, stripFrontMatter bool) (*File, error) {
	if !stripFrontMatter {
		return NewFile(path, source)
	}
	prefix, content := StripFrontMatter(source)
	f, err := NewFile(path, content)
	if err != nil {
		return nil, err
	}
	if prefix != nil {
		f.FrontMatter = prefix
		f.LineOffset = bytes.Count(prefix, []byte("\n"))
		f.ByteOffset = len(prefix)
	}
	return f, nil
}

// LineOfOffset converts a byte offset in Source to a 1-based line number.
func (f *File) LineOfOffset(offset int) int {
	return sort.Search(len(f.LineStarts), func(i int) bool {
		return f.LineStarts[i] > offset
	})
}

// LineEnd returns the offset just past the content of the 0-based line i,
// excluding its newline.
func (f *File) LineEnd(i int) int {
	return f.LineStarts[i] + len(f.Lines[i])
}

// Column returns the 1-based column of offset counted in grapheme clusters,
// so wide and combined characters count once.
func (f *File) Column(offset int) int {
	line := f.LineOfOffset(offset)
	if line < 1 {
		return 1
	}
	start := f.LineStarts[line-1]
	if offset > len(f.Source) {
		offset = len(f.Source)
	}
	return uniseg.GraphemeClusterCount(string(f.Source[start:offset])) + 1
}

// InCode reports whether offset falls inside a code region of the file.
func (f *File) InCode(offset int) bool {
	return InRegion(f.Regions, offset)
}

// Diagnostic returns a diagnostic for the body range [start, end) with its
// line and column filled in.
func (f *File) Diagnostic(start, end int, id, name, msg string) Diagnostic {
	var excerpt string
	if s, e := min(max(start, 0), len(f.Source)), min(end, len(f.Source)); s < e {
		excerpt = string(f.Source[s:e])
	}
	return Diagnostic{
		File:     f.Path,
		Line:     f.LineOfOffset(start),
		Column:   f.Column(start),
		Start:    start,
		End:      end,
		RuleID:   id,
		RuleName: name,
		Severity: Warning,
		Message:  msg,
		Excerpt:  excerpt,
	}
}

// AdjustDiagnostics shifts diagnostics computed against the body so they
// refer to the full source, front matter included.
func (f *File) AdjustDiagnostics(diags []Diagnostic) {
	if f.LineOffset == 0 && f.ByteOffset == 0 {
		return
	}
	for i := range diags {
		diags[i].Line += f.LineOffset
		diags[i].Start += f.ByteOffset
		diags[i].End += f.ByteOffset
	}
}

// FullSource returns body with the stripped front matter prepended.
func (f *File) FullSource(body []byte) []byte {
	if len(f.FrontMatter) == 0 {
		return body
	}
	out := make([]byte, 0, len(f.FrontMatter)+len(body))
	out = append(out, f.FrontMatter...)
	return append(out, body...)
}
