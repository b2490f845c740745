package lint

// Severity indicates the severity level of a diagnostic.
type Severity string

// Severity levels.
const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Issue is a half-open byte range [Start, End) in the source that should
// be flagged to the reader.
type Issue struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the issue.
func (i Issue) Len() int { return i.End - i.Start }

// Diagnostic represents a single lint finding. Start and End locate the
// flagged range in the full source; Line and Column locate Start for
// human-facing output. Excerpt holds the flagged bytes.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Start    int
	End      int
	RuleID   string
	RuleName string
	Severity Severity
	Message  string
	Excerpt  string
}

// Issue returns the flagged range of d.
func (d Diagnostic) Issue() Issue {
	return Issue{Start: d.Start, End: d.End}
}
