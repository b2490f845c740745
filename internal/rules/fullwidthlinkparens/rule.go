package fullwidthlinkparens

import (
	"regexp"
	"strings"

	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

const (
	openParen  = "（"
	closeParen = "）"
)

// linkPattern matches "[text]（url）", a link typed with full-width
// parentheses.
var linkPattern = regexp.MustCompile(`\[[^\]\n]*\]（[^）\n]*）`)

// Rule flags the full-width parentheses of links written as [text]（url）.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "NM005" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "fullwidth-link-parens" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "cjk" }

// Find returns the two parenthesis ranges of every full-width link in text,
// relative to text.
func Find(text string) []lint.Issue {
	var issues []lint.Issue
	for _, m := range linkPattern.FindAllStringIndex(text, -1) {
		open := m[0] + strings.Index(text[m[0]:m[1]], "]"+openParen) + 1
		closing := m[1] - len(closeParen)
		issues = append(issues,
			lint.Issue{Start: open, End: open + len(openParen)},
			lint.Issue{Start: closing, End: m[1]},
		)
	}
	return issues
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, seg := range lint.NonCodeSegments(string(f.Source), f.Regions) {
		for _, iss := range Find(seg.Text) {
			start, end := seg.Offset+iss.Start, seg.Offset+iss.End
			msg := "full-width parenthesis in link; use ( )"
			diags = append(diags, f.Diagnostic(start, end, r.ID(), r.Name(), msg))
		}
	}
	return diags
}

// Fix implements rule.FixableRule.
func (r *Rule) Fix(f *lint.File) []byte {
	src := string(f.Source)
	var b strings.Builder
	pos := 0
	for _, seg := range lint.NonCodeSegments(src, f.Regions) {
		issues := Find(seg.Text)
		for i := 0; i+1 < len(issues); i += 2 {
			open := seg.Offset + issues[i].Start
			closing := seg.Offset + issues[i+1].Start
			b.WriteString(src[pos:open])
			b.WriteString("(")
			b.WriteString(src[open+len(openParen) : closing])
			b.WriteString(")")
			pos = closing + len(closeParen)
		}
	}
	b.WriteString(src[pos:])
	return []byte(b.String())
}
