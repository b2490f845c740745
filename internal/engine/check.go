package engine

import (
	"fmt"
	"sort"

	"github.com/jeduden/notemark/internal/config"
	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/rule"
)

// ConfigureRule clones a rule and applies settings from cfg if the rule
// implements Configurable and cfg has settings. Returns the configured
// rule (or the original if no settings apply) and any error from
// ApplySettings.
func ConfigureRule(rl rule.Rule, cfg config.RuleCfg) (rule.Rule, error) {
	if cfg.Settings == nil {
		return rl, nil
	}
	if _, ok := rl.(rule.Configurable); !ok {
		return rl, nil
	}
	clone := rule.CloneRule(rl)
	if c, ok := clone.(rule.Configurable); ok {
		if err := c.ApplySettings(cfg.Settings); err != nil {
			return nil, fmt.Errorf("applying settings for %s: %w", rl.Name(), err)
		}
	}
	return clone, nil
}

// EffectiveRules returns the rule configuration for path with overrides and
// category toggles applied.
func EffectiveRules(cfg *config.Config, path string, rules []rule.Rule) map[string]config.RuleCfg {
	categoryOf := make(map[string]string, len(rules))
	for _, rl := range rules {
		categoryOf[rl.Name()] = rl.Category()
	}
	return config.ApplyCategories(
		config.Effective(cfg, path),
		config.EffectiveCategories(cfg, path),
		func(name string) string { return categoryOf[name] },
		config.EffectiveExplicitRules(cfg, path),
	)
}

// CheckRules runs all enabled rules against f, cloning and applying
// settings for Configurable rules. It adjusts diagnostics using
// f.AdjustDiagnostics and returns the collected diagnostics and any
// settings-application errors.
func CheckRules(f *lint.File, rules []rule.Rule, effective map[string]config.RuleCfg) ([]lint.Diagnostic, []error) {
	var diags []lint.Diagnostic
	var errs []error

	for _, rl := range rules {
		cfg, ok := effective[rl.Name()]
		if !ok || !cfg.Enabled {
			continue
		}

		checkRule, err := ConfigureRule(rl, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		diags = append(diags, checkRule.Check(f)...)
	}

	f.AdjustDiagnostics(diags)
	return diags, errs
}

// SortDiagnostics orders diagnostics by file, then position. Diagnostics
// at the same position keep rule order.
func SortDiagnostics(diags []lint.Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		di, dj := diags[i], diags[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.End < dj.End
	})
}
