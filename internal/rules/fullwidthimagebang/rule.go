package fullwidthimagebang

import (
	"regexp"
	"strings"

	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

const bang = "！"

// imagePattern matches an image whose '!' was typed full-width, with either
// parenthesis style after the alt text.
var imagePattern = regexp.MustCompile(`！\[[^\]\n]*\][(（]`)

// Rule flags the full-width exclamation mark of images written as ！[alt](url).
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "NM006" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "fullwidth-image-bang" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "cjk" }

// Find returns the range of every full-width image '！' in text, relative to
// text.
func Find(text string) []lint.Issue {
	var issues []lint.Issue
	for _, m := range imagePattern.FindAllStringIndex(text, -1) {
		issues = append(issues, lint.Issue{Start: m[0], End: m[0] + len(bang)})
	}
	return issues
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, seg := range lint.NonCodeSegments(string(f.Source), f.Regions) {
		for _, iss := range Find(seg.Text) {
			diags = append(diags, f.Diagnostic(
				seg.Offset+iss.Start, seg.Offset+iss.End,
				r.ID(), r.Name(), "full-width '！' before image; use '!'",
			))
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
		for _, iss := range Find(seg.Text) {
			start := seg.Offset + iss.Start
			b.WriteString(src[pos:start])
			b.WriteString("!")
			pos = start + len(bang)
		}
	}
	b.WriteString(src[pos:])
	return []byte(b.String())
}
