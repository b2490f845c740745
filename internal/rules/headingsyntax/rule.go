package headingsyntax

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

var (
	headingPattern = regexp.MustCompile(`^#{1,6}\s.+$`)
	excessSpaces   = regexp.MustCompile(`^(#+)( {2,})`)
)

// trailingPunctuation contains the characters a heading may not end with.
const trailingPunctuation = ".,;:!?"

// Problem classifies what Validate found wrong with a heading line.
type Problem int

// Heading problems.
const (
	None Problem = iota
	Malformed
	ExcessSpaces
	TrailingPunctuation
)

var messages = map[Problem]string{
	Malformed:           "heading must be 1-6 '#' followed by whitespace and text",
	ExcessSpaces:        "more than one space after heading marker",
	TrailingPunctuation: "heading should not end with punctuation",
}

// Rule checks that lines starting with '#' are well-formed ATX headings.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "NM001" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "heading-syntax" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "heading" }

// Validate checks a single line that starts with '#'. The returned issue is
// relative to the start of line. Only the first problem found is reported:
// a malformed line flags the whole line, excess spaces flag the run after
// the hashes, and trailing punctuation flags the final character.
func Validate(line string) (lint.Issue, Problem) {
	if !headingPattern.MatchString(line) {
		return lint.Issue{Start: 0, End: len(line)}, Malformed
	}
	if m := excessSpaces.FindStringSubmatchIndex(line); m != nil {
		hashes, run := m[3], m[5]-m[4]
		return lint.Issue{Start: hashes, End: hashes + run - 1}, ExcessSpaces
	}
	if strings.IndexByte(trailingPunctuation, line[len(line)-1]) >= 0 {
		return lint.Issue{Start: len(line) - 1, End: len(line)}, TrailingPunctuation
	}
	return lint.Issue{}, None
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	linescan.Each(f, '#', func(start int, line string) {
		iss, p := Validate(line)
		if p == None {
			return
		}
		diags = append(diags, f.Diagnostic(start+iss.Start, start+iss.End, r.ID(), r.Name(), messages[p]))
	})
	return diags
}

// Fix implements rule.FixableRule. It collapses the spaces after the hash
// run to a single space; other problems need a human.
func (r *Rule) Fix(f *lint.File) []byte {
	return linescan.Rewrite(f, '#', func(line string) string {
		m := excessSpaces.FindStringSubmatchIndex(line)
		if m == nil || !headingPattern.MatchString(line) {
			return line
		}
		return line[:m[3]] + " " + line[m[5]:]
	})
}
