package engine

import (
	"fmt"
	"os"

	"github.com/jeduden/notemark/internal/config"
	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/log"
	"github.com/jeduden/notemark/internal/rule"
)

// Runner drives the linting pipeline: for each file it reads the content,
// builds a File (parsing the AST and code regions once), determines the
// effective rule configuration, runs enabled rules, and collects
// diagnostics.
type Runner struct {
	Config           *config.Config
	Rules            []rule.Rule
	StripFrontMatter bool
	Log              *log.Logger
}

// Result holds the output of a lint run.
type Result struct {
	Diagnostics []lint.Diagnostic
	Errors      []error
}

// Run lints the files at the given paths and returns a Result containing
// all diagnostics (sorted by file and position) and any errors encountered.
func (r *Runner) Run(paths []string) *Result {
	res := &Result{}

	for _, path := range paths {
		if r.Config.IsIgnored(path) {
			r.Log.Printf("skip %s (ignored)", path)
			continue
		}

		source, err := os.ReadFile(path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("reading %q: %w", path, err))
			continue
		}

		r.check(res, path, source)
	}

	SortDiagnostics(res.Diagnostics)
	return res
}

// RunSource lints source as if it were the file at path. It is used for
// stdin input.
func (r *Runner) RunSource(path string, source []byte) *Result {
	res := &Result{}
	r.check(res, path, source)
	SortDiagnostics(res.Diagnostics)
	return res
}

func (r *Runner) check(res *Result, path string, source []byte) {
	f, err := lint.NewFileFromSource(path, source, r.StripFrontMatter)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("parsing %q: %w", path, err))
		return
	}
	r.Log.Printf("check %s (%d bytes, %d code regions)", path, len(source), len(f.Regions))

	effective := EffectiveRules(r.Config, path, r.Rules)
	diags, errs := CheckRules(f, r.Rules, effective)
	for _, d := range diags {
		r.Log.Printf("%s:%d:%d %s", d.File, d.Line, d.Column, d.RuleID)
	}
	res.Diagnostics = append(res.Diagnostics, diags...)
	res.Errors = append(res.Errors, errs...)
}
