package headingincrement

import (
	"fmt"

	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/rule"
	"github.com/yuin/goldmark/ast"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that heading levels only increment by one.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "NM007" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "heading-increment" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "heading" }

// EnabledByDefault implements rule.Defaultable. Notes often start at any
// level, so the check is opt-in.
func (r *Rule) EnabledByDefault() bool { return false }

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	prevLevel := 0

	_ = ast.Walk(f.AST(), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		level := heading.Level
		var msg string
		switch {
		case prevLevel == 0 && level > 1:
			msg = fmt.Sprintf("first heading level should be 1, got %d", level)
		case prevLevel > 0 && level > prevLevel+1:
			msg = fmt.Sprintf("heading level incremented from %d to %d (expected %d)",
				prevLevel, level, prevLevel+1)
		}
		if msg != "" {
			start, end := headingLine(heading, f)
			diags = append(diags, f.Diagnostic(start, end, r.ID(), r.Name(), msg))
		}

		prevLevel = level
		return ast.WalkContinue, nil
	})

	return diags
}

// headingLine returns the byte range of the source line holding heading.
func headingLine(heading *ast.Heading, f *lint.File) (int, int) {
	offset := -1
	if lines := heading.Lines(); lines.Len() > 0 {
		offset = lines.At(0).Start
	} else {
		for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				offset = t.Segment.Start
				break
			}
		}
	}
	if offset < 0 || len(f.LineStarts) == 0 {
		return 0, 0
	}
	i := f.LineOfOffset(offset) - 1
	return f.LineStarts[i], f.LineEnd(i)
}
