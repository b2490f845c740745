// Package render paints highlight spans onto text for terminal output.
package render

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeduden/notemark/internal/highlight"
)

// Renderer composes span styles over text. Rendering never adds, removes
// or reorders visible characters.
type Renderer struct {
	Theme Theme
	r     *lipgloss.Renderer
}

// New returns a Renderer drawing with r.
func New(r *lipgloss.Renderer, theme Theme) *Renderer {
	return &Renderer{Theme: theme, r: r}
}

// Render returns text with spans applied. Where spans overlap, properties
// set by later spans override earlier ones; unset properties are inherited.
func (rd *Renderer) Render(text string, spans []highlight.Span) string {
	cuts := []int{0, len(text)}
	for _, s := range spans {
		cuts = append(cuts, clampInt(s.Start, 0, len(text)), clampInt(s.End, 0, len(text)))
	}
	sort.Ints(cuts)

	var sb strings.Builder
	for i := 0; i+1 < len(cuts); i++ {
		a, b := cuts[i], cuts[i+1]
		if a == b {
			continue
		}
		style := rd.r.NewStyle()
		for _, s := range spans {
			if s.Start <= a && s.End >= b {
				style = rd.Theme.style(s).Inherit(style)
			}
		}
		writeStyled(&sb, style.TabWidth(lipgloss.NoTabConversion), text[a:b])
	}
	return sb.String()
}

// writeStyled renders s one line at a time so lipgloss never pads lines to
// a common width. Line breaks are written unstyled.
func writeStyled(sb *strings.Builder, style lipgloss.Style, s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		body, cr := strings.CutSuffix(line, "\r")
		if body != "" {
			sb.WriteString(style.Render(body))
		}
		if cr {
			sb.WriteByte('\r')
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
