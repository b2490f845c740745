package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeduden/notemark/internal/lint"
)

// Formatter writes lint diagnostics for a reader: a terminal or an editor.
type Formatter interface {
	Format(w io.Writer, diagnostics []lint.Diagnostic) error
}

// New returns the formatter for name ("text" or "json"). Text output is
// styled through r; a nil r gives plain text.
func New(name string, r *lipgloss.Renderer) (Formatter, error) {
	switch name {
	case "", "text":
		return NewText(r), nil
	case "json":
		return &JSONFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}
