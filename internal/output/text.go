package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeduden/notemark/internal/lint"
)

// excerptWidth caps the quoted excerpt in terminal cells.
const excerptWidth = 32

// TextFormatter writes one line per diagnostic:
//
//	file:line:col RULE message [start,end) "excerpt"
//
// The zero value writes plain text.
type TextFormatter struct {
	Location lipgloss.Style
	Rule     lipgloss.Style
	Span     lipgloss.Style

	styled bool
}

// NewText returns a TextFormatter whose styles are bound to r. The
// renderer's color profile decides whether escapes are written, so a
// termenv.Ascii profile yields plain text.
func NewText(r *lipgloss.Renderer) *TextFormatter {
	if r == nil {
		return &TextFormatter{}
	}
	return &TextFormatter{
		Location: r.NewStyle().Foreground(lipgloss.Color("6")),
		Rule:     r.NewStyle().Foreground(lipgloss.Color("3")),
		Span:     r.NewStyle().Faint(true),
		styled:   true,
	}
}

// Format writes diagnostics in order.
func (f *TextFormatter) Format(w io.Writer, diagnostics []lint.Diagnostic) error {
	for _, d := range diagnostics {
		loc := fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
		span := fmt.Sprintf("[%d,%d)", d.Start, d.End)
		if d.Excerpt != "" {
			span += " " + strconv.Quote(ansi.Truncate(d.Excerpt, excerptWidth, "…"))
		}
		rule := d.RuleID
		if f.styled {
			loc, rule, span = f.Location.Render(loc), f.Rule.Render(rule), f.Span.Render(span)
		}
		if _, err := fmt.Fprintf(w, "%s %s %s %s\n", loc, rule, d.Message, span); err != nil {
			return err
		}
	}
	return nil
}
