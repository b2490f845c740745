package fix

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/jeduden/notemark/internal/config"
	"github.com/jeduden/notemark/internal/engine"
	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/log"
	"github.com/jeduden/notemark/internal/rule"
)

// maxPasses bounds the fix loop. A later rule's fix may introduce
// violations caught by an earlier rule, so passes repeat until stable.
const maxPasses = 10

// Fixer applies auto-fixes for fixable rules and reports remaining diagnostics.
type Fixer struct {
	Config           *config.Config
	Rules            []rule.Rule
	StripFrontMatter bool
	Log              *log.Logger
}

// FixResult holds the outcome of a fix run.
type FixResult struct {
	// Diagnostics contains remaining diagnostics after fixing (from non-fixable
	// rules and any violations that could not be auto-fixed).
	Diagnostics []lint.Diagnostic
	// Modified lists file paths that were written back to disk.
	Modified []string
	// Errors contains any errors encountered during the fix process.
	Errors []error
}

// Fix applies auto-fixes to the files at the given paths and returns a FixResult
// containing remaining diagnostics, modified file paths, and any errors.
func (f *Fixer) Fix(paths []string) *FixResult {
	res := &FixResult{}

	for _, path := range paths {
		if f.Config.IsIgnored(path) {
			f.Log.Printf("skip %s (ignored)", path)
			continue
		}

		source, err := os.ReadFile(path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("reading %q: %w", path, err))
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("stat %q: %w", path, err))
			continue
		}

		fixed, diags, errs := f.FixSource(path, source)
		res.Errors = append(res.Errors, errs...)
		res.Diagnostics = append(res.Diagnostics, diags...)

		if !bytes.Equal(source, fixed) {
			if err := os.WriteFile(path, fixed, info.Mode()); err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("writing %q: %w", path, err))
				continue
			}
			f.Log.Printf("fixed %s", path)
			res.Modified = append(res.Modified, path)
		}
	}

	engine.SortDiagnostics(res.Diagnostics)
	return res
}

// FixSource applies the enabled fixable rules to source as if it were the
// file at path. It returns the fixed source, with any front matter kept
// intact, and the diagnostics that remain.
func (f *Fixer) FixSource(path string, source []byte) ([]byte, []lint.Diagnostic, []error) {
	orig, err := lint.NewFileFromSource(path, source, f.StripFrontMatter)
	if err != nil {
		return source, nil, []error{fmt.Errorf("parsing %q: %w", path, err)}
	}

	effective := engine.EffectiveRules(f.Config, path, f.Rules)
	fixable, errs := f.fixableRules(effective)

	current := orig.Source
	for pass := 0; pass < maxPasses; pass++ {
		before := current
		for _, fr := range fixable {
			lf, err := lint.NewFile(path, current)
			if err != nil {
				errs = append(errs, fmt.Errorf("parsing %q: %w", path, err))
				break
			}
			if len(fr.Check(lf)) == 0 {
				continue
			}
			current = fr.Fix(lf)
		}
		if bytes.Equal(before, current) {
			f.Log.Printf("%s: stable after %d pass(es)", path, pass+1)
			break
		}
	}
	fixed := orig.FullSource(current)

	// Final lint pass with ALL enabled rules to collect remaining diagnostics.
	lf, err := lint.NewFileFromSource(path, fixed, f.StripFrontMatter)
	if err != nil {
		return fixed, nil, append(errs, fmt.Errorf("parsing %q after fix: %w", path, err))
	}
	diags, checkErrs := engine.CheckRules(lf, f.Rules, effective)
	return fixed, diags, append(errs, checkErrs...)
}

// fixableRules returns enabled rules that implement FixableRule with their
// settings applied, sorted by ID.
func (f *Fixer) fixableRules(effective map[string]config.RuleCfg) ([]rule.FixableRule, []error) {
	var fixable []rule.FixableRule
	var errs []error
	for _, rl := range f.Rules {
		cfg, ok := effective[rl.Name()]
		if !ok || !cfg.Enabled {
			continue
		}
		if _, ok := rl.(rule.FixableRule); !ok {
			continue
		}
		configured, err := engine.ConfigureRule(rl, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fixable = append(fixable, configured.(rule.FixableRule))
	}
	sort.Slice(fixable, func(i, j int) bool {
		return fixable[i].ID() < fixable[j].ID()
	})
	return fixable, errs
}
