package blockquotesyntax

import (
	"regexp"

	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/rule"
	"github.com/jeduden/notemark/internal/rules/linescan"
)

func init() {
	rule.Register(&Rule{})
}

var (
	quotePattern = regexp.MustCompile(`^>\s.+$`)
	excessSpaces = regexp.MustCompile(`^>( {2,})`)
)

// Rule checks that lines starting with '>' are a marker, one space and text.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "NM002" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "blockquote-syntax" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "blockquote" }

// Validate checks a single line that starts with '>' and returns the
// flagged range relative to the line. ok is false for a clean line.
func Validate(line string) (iss lint.Issue, msg string, ok bool) {
	if !quotePattern.MatchString(line) {
		return lint.Issue{Start: 0, End: len(line)}, "blockquote must be '>' followed by whitespace and text", true
	}
	if m := excessSpaces.FindStringSubmatchIndex(line); m != nil {
		run := m[3] - m[2]
		return lint.Issue{Start: 1, End: run}, "more than one space after blockquote marker", true
	}
	return lint.Issue{}, "", false
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	linescan.Each(f, '>', func(start int, line string) {
		if iss, msg, ok := Validate(line); ok {
			diags = append(diags, f.Diagnostic(start+iss.Start, start+iss.End, r.ID(), r.Name(), msg))
		}
	})
	return diags
}

// Fix implements rule.FixableRule.
func (r *Rule) Fix(f *lint.File) []byte {
	return linescan.Rewrite(f, '>', func(line string) string {
		m := excessSpaces.FindStringSubmatchIndex(line)
		if m == nil || !quotePattern.MatchString(line) {
			return line
		}
		return "> " + line[m[3]:]
	})
}
