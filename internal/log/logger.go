package log

import (
	"fmt"
	"io"
)

// Logger writes verbose diagnostic messages when Enabled is true.
// Output goes to the configured writer (typically stderr), each line
// starting with Prefix. A nil *Logger is valid and discards everything.
type Logger struct {
	Enabled bool
	W       io.Writer
	Prefix  string
}

// Printf writes a formatted message to W when Enabled is true.
// It is a no-op when Enabled is false.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled || l.W == nil {
		return
	}
	_, _ = fmt.Fprintf(l.W, l.Prefix+format+"\n", args...)
}
