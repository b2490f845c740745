package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeduden/notemark/internal/highlight"
)

// Theme maps span kinds to styles. Headers styles header text by level and
// falls back to the KindHeader style when a level has no entry.
type Theme struct {
	Styles  map[highlight.Kind]lipgloss.Style
	Headers map[int]lipgloss.Style
}

// DefaultTheme returns the built-in theme with styles bound to r.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	st := r.NewStyle
	return Theme{
		Styles: map[highlight.Kind]lipgloss.Style{
			highlight.KindCode:            st().Foreground(c("203")),
			highlight.KindCodeBlock:       st().Foreground(c("250")),
			highlight.KindFenceInfo:       st().Foreground(c("244")).Italic(true),
			highlight.KindBold:            st().Bold(true),
			highlight.KindItalic:          st().Italic(true),
			highlight.KindBoldItalic:      st().Bold(true).Italic(true),
			highlight.KindStrikethrough:   st().Strikethrough(true),
			highlight.KindUnderline:       st().Underline(true),
			highlight.KindHighlight:       st().Background(c("220")).Foreground(c("0")),
			highlight.KindLink:            st().Foreground(c("39")).Underline(true),
			highlight.KindStrikeUnderline: st().Strikethrough(true).Underline(true),
			highlight.KindHeaderLine:      st().Bold(true),
			highlight.KindHeader:          st().Foreground(c("212")),
			highlight.KindMarker:          st().Foreground(c("244")),
			highlight.KindMarkerCompact:   st().Foreground(c("240")).Faint(true),
			highlight.KindSearchMatch:     st().Background(c("237")),
			highlight.KindCurrentMatch:    st().Background(c("214")).Foreground(c("0")),
		},
		Headers: map[int]lipgloss.Style{
			1: st().Foreground(c("212")).Underline(true),
			2: st().Foreground(c("212")),
			3: st().Foreground(c("177")),
		},
	}
}

// WithColors returns a copy of t whose foreground colors are replaced from
// colors, keyed by span kind name ("bold", "link", ...) or "header-N".
func (t Theme) WithColors(colors map[string]string) (Theme, error) {
	out := Theme{
		Styles:  make(map[highlight.Kind]lipgloss.Style, len(t.Styles)),
		Headers: make(map[int]lipgloss.Style, len(t.Headers)),
	}
	for k, s := range t.Styles {
		out.Styles[k] = s
	}
	for l, s := range t.Headers {
		out.Headers[l] = s
	}

	for key, color := range colors {
		if rest, ok := strings.CutPrefix(key, "header-"); ok {
			if level, err := strconv.Atoi(rest); err == nil {
				if level < 1 || level > 6 {
					return Theme{}, fmt.Errorf("theme: header level %d out of range 1-6", level)
				}
				base, ok := out.Headers[level]
				if !ok {
					base = out.Styles[highlight.KindHeader]
				}
				out.Headers[level] = base.Foreground(lipgloss.Color(color))
				continue
			}
		}
		kind, ok := kindByName(key)
		if !ok {
			return Theme{}, fmt.Errorf("theme: unknown key %q", key)
		}
		out.Styles[kind] = out.Styles[kind].Foreground(lipgloss.Color(color))
	}
	return out, nil
}

func (t Theme) style(s highlight.Span) lipgloss.Style {
	if s.Kind == highlight.KindHeader {
		if hs, ok := t.Headers[s.Level]; ok {
			return hs
		}
	}
	return t.Styles[s.Kind]
}

func kindByName(name string) (highlight.Kind, bool) {
	for _, k := range highlight.Kinds() {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}
