package rule

import "github.com/jeduden/notemark/internal/lint"

// Rule is a single lint rule that checks a Markdown note. Check reports
// byte ranges against f.Source.
type Rule interface {
	ID() string
	Name() string
	Category() string
	Check(f *lint.File) []lint.Diagnostic
}

// FixableRule is a Rule that can also auto-fix violations. Fix returns the
// corrected body and leaves code regions untouched.
type FixableRule interface {
	Rule
	Fix(f *lint.File) []byte
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}

// Defaultable is implemented by rules that override the default enabled
// state in generated/runtime configs.
type Defaultable interface {
	EnabledByDefault() bool
}

// EnabledByDefault reports whether r runs when no config mentions it.
func EnabledByDefault(r Rule) bool {
	if d, ok := r.(Defaultable); ok {
		return d.EnabledByDefault()
	}
	return true
}
