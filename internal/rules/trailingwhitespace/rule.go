package trailingwhitespace

import (
	"regexp"
	"strings"

	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/rule"
	"github.com/jeduden/notemark/internal/rules/linescan"
)

func init() {
	rule.Register(&Rule{})
}

// Two trailing spaces are a Markdown hard line break, so only three or
// more are flagged.
var trailing = regexp.MustCompile(`\s{3,}$`)

// Rule checks that no line ends with three or more whitespace characters.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "NM003" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "trailing-whitespace" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "whitespace" }

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	linescan.Each(f, 0, func(start int, line string) {
		if trailing.MatchString(line) {
			diags = append(diags, f.Diagnostic(start, start+len(line), r.ID(), r.Name(), "trailing whitespace"))
		}
	})
	return diags
}

// Fix implements rule.FixableRule.
func (r *Rule) Fix(f *lint.File) []byte {
	return linescan.Rewrite(f, 0, func(line string) string {
		if !trailing.MatchString(line) {
			return line
		}
		return strings.TrimRight(line, " \t\f\v")
	})
}
