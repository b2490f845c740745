// Package linescan holds the line iteration shared by the line-anchored
// rules. Lines whose start offset falls inside a code region are skipped
// and a trailing carriage return is not part of the line.
package linescan

import (
	"strings"

	"github.com/jeduden/notemark/internal/lint"
)

// Each calls fn for every line outside code regions. When lead is not 0,
// only lines whose first byte is lead are visited.
func Each(f *lint.File, lead byte, fn func(start int, line string)) {
	for i, raw := range f.Lines {
		start := f.LineStarts[i]
		if f.InCode(start) {
			continue
		}
		line := strings.TrimSuffix(string(raw), "\r")
		if lead != 0 && (len(line) == 0 || line[0] != lead) {
			continue
		}
		fn(start, line)
	}
}

// Rewrite returns the body with fn applied to every line Each would visit.
// Other lines, including those in code regions, are copied unchanged.
func Rewrite(f *lint.File, lead byte, fn func(line string) string) []byte {
	out := make([]string, len(f.Lines))
	for i, raw := range f.Lines {
		line := string(raw)
		out[i] = line
		if f.InCode(f.LineStarts[i]) {
			continue
		}
		cr := strings.HasSuffix(line, "\r")
		line = strings.TrimSuffix(line, "\r")
		if lead != 0 && (len(line) == 0 || line[0] != lead) {
			continue
		}
		line = fn(line)
		if cr {
			line += "\r"
		}
		out[i] = line
	}
	return []byte(strings.Join(out, "\n"))
}
