package excessblanklines

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/rule"
)

func init() {
	rule.Register(&Rule{Max: defaultMax})
}

const defaultMax = 3

// Rule checks that there are no more than Max consecutive blank lines.
// Every blank line past the limit is reported with a range that starts at
// the first blank line of the run, so the flagged range grows with the run.
type Rule struct {
	Max int // maximum allowed consecutive blank lines (default: 3)
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "NM004" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "excess-blank-lines" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "whitespace" }

// isBlank returns true if the line contains only whitespace.
func isBlank(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0
}

// maxBlanks returns the effective maximum.
func (r *Rule) maxBlanks() int {
	if r.Max <= 0 {
		return defaultMax
	}
	return r.Max
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	max := r.maxBlanks()
	run, runStart := 0, 0
	for i, line := range f.Lines {
		start := f.LineStarts[i]
		if f.InCode(start) || !isBlank(line) {
			run = 0
			continue
		}
		run++
		if run == 1 {
			runStart = start
		}
		if run > max {
			msg := fmt.Sprintf("%d consecutive blank lines (max %d)", run, max)
			diags = append(diags, f.Diagnostic(runStart, f.LineEnd(i), r.ID(), r.Name(), msg))
		}
	}
	return diags
}

// Fix implements rule.FixableRule.
func (r *Rule) Fix(f *lint.File) []byte {
	max := r.maxBlanks()
	var result []string
	run := 0
	for i, line := range f.Lines {
		if f.InCode(f.LineStarts[i]) || !isBlank(line) {
			run = 0
			result = append(result, string(line))
			continue
		}
		run++
		if run > max {
			continue
		}
		result = append(result, string(line))
	}
	return []byte(strings.Join(result, "\n"))
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "max":
			n, ok := toInt(v)
			if !ok {
				return fmt.Errorf("excess-blank-lines: max must be an integer, got %T", v)
			}
			if n < 1 {
				return fmt.Errorf("excess-blank-lines: max must be at least 1, got %d", n)
			}
			r.Max = n
		default:
			return fmt.Errorf("excess-blank-lines: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"max": defaultMax,
	}
}

// toInt converts a value to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case int64:
		return int(n), true
	}
	return 0, false
}

var _ rule.Configurable = (*Rule)(nil)
