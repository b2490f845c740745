// Package notemark checks and highlights Markdown notes.
//
// Validate reports formatting issues as byte ranges, CodeRegions locates
// verbatim text, and Annotate produces the style spans an editor or
// terminal renderer paints.
package notemark

import (
	"sort"

	"github.com/jeduden/notemark/internal/highlight"
	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/rule"

	// Register the built-in rules.
	_ "github.com/jeduden/notemark/internal/rules/blockquotesyntax"
	_ "github.com/jeduden/notemark/internal/rules/excessblanklines"
	_ "github.com/jeduden/notemark/internal/rules/fullwidthimagebang"
	_ "github.com/jeduden/notemark/internal/rules/fullwidthlinkparens"
	_ "github.com/jeduden/notemark/internal/rules/headingincrement"
	_ "github.com/jeduden/notemark/internal/rules/headingsyntax"
	_ "github.com/jeduden/notemark/internal/rules/trailingwhitespace"
)

type (
	// Issue is a flagged byte range [Start, End).
	Issue = lint.Issue
	// CodeRegion is a byte range of verbatim text.
	CodeRegion = lint.CodeRegion
	// Range is a half-open byte range used by the tagger.
	Range = highlight.Range
	// Ranges holds every construct found by the tagger.
	Ranges = highlight.Ranges
	// Span is one styled range produced by Annotate.
	Span = highlight.Span
	// Options controls Annotate.
	Options = highlight.Options
)

// Validate returns the formatting issues of markdown, sorted by start and
// then end offset. A leading properties block is not checked; offsets
// still refer to markdown as given. Only rules enabled by default run.
func Validate(markdown string) []Issue {
	f, err := lint.NewFileFromSource("", []byte(markdown), true)
	if err != nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, r := range rule.Defaults() {
		diags = append(diags, r.Check(f)...)
	}
	f.AdjustDiagnostics(diags)

	issues := make([]Issue, 0, len(diags))
	for _, d := range diags {
		issues = append(issues, d.Issue())
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Start != issues[j].Start {
			return issues[i].Start < issues[j].Start
		}
		return issues[i].End < issues[j].End
	})
	return issues
}

// CodeRegions returns the fenced blocks, inline code spans and quote spans
// of text in ascending order.
func CodeRegions(text string) []CodeRegion {
	return lint.CodeRegions(text)
}

// IsEscaped reports whether the byte at i is preceded by an odd number of
// backslashes.
func IsEscaped(text string, i int) bool {
	return lint.IsEscaped(text, i)
}

// Find returns the styled constructs of text without any filtering.
func Find(text string) Ranges {
	return highlight.Find(text)
}

// Annotate runs the full styling pipeline over text.
func Annotate(text string, opts Options) []Span {
	return highlight.Annotate(text, opts)
}
