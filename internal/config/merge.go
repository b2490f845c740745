package config

import (
	"path/filepath"

	"github.com/gobwas/glob"
)

// Merge merges a loaded config on top of defaults. The loaded config's rules
// override the defaults; any rule not mentioned in loaded keeps its default
// value. Ignore and Overrides come from the loaded config only; Files falls
// back to the defaults when loaded names none.
func Merge(defaults, loaded *Config) *Config {
	rules := make(map[string]RuleCfg, len(defaults.Rules))
	for k, v := range defaults.Rules {
		rules[k] = v
	}
	categories := make(map[string]bool, len(defaults.Categories))
	for k, v := range defaults.Categories {
		categories[k] = v
	}

	if loaded == nil {
		return &Config{
			Rules:       rules,
			Files:       defaults.Files,
			FrontMatter: defaults.FrontMatter,
			Categories:  categories,
			Show:        defaults.Show,
		}
	}

	explicit := make(map[string]bool, len(loaded.Rules))
	for k, v := range loaded.Rules {
		rules[k] = v
		explicit[k] = true
	}
	for k, v := range loaded.Categories {
		categories[k] = v
	}

	fm := defaults.FrontMatter
	if loaded.FrontMatter != nil {
		fm = loaded.FrontMatter
	}
	show := defaults.Show
	if loaded.Show != nil {
		show = loaded.Show
	}
	files := defaults.Files
	if len(loaded.Files) > 0 {
		files = loaded.Files
	}

	return &Config{
		Rules:         rules,
		Files:         files,
		Ignore:        loaded.Ignore,
		Overrides:     loaded.Overrides,
		FrontMatter:   fm,
		Categories:    categories,
		Show:          show,
		ExplicitRules: explicit,
	}
}

// Effective returns the effective rule configuration for a given file path.
// It starts with the top-level rules and then applies each override whose
// file patterns match filePath, in order. Later overrides take precedence.
func Effective(cfg *Config, filePath string) map[string]RuleCfg {
	result := make(map[string]RuleCfg, len(cfg.Rules))
	for k, v := range cfg.Rules {
		result[k] = v
	}

	for _, o := range cfg.Overrides {
		if matchesAny(o.Files, filePath) {
			for k, v := range o.Rules {
				result[k] = v
			}
		}
	}

	return result
}

// EffectiveCategories returns the enabled state of every valid category for
// filePath. Categories default to enabled; top-level settings apply first,
// then matching overrides in order.
func EffectiveCategories(cfg *Config, filePath string) map[string]bool {
	result := make(map[string]bool, len(ValidCategories))
	for _, c := range ValidCategories {
		result[c] = true
	}
	for k, v := range cfg.Categories {
		result[k] = v
	}
	for _, o := range cfg.Overrides {
		if matchesAny(o.Files, filePath) {
			for k, v := range o.Categories {
				result[k] = v
			}
		}
	}
	return result
}

// EffectiveExplicitRules returns the rule names set directly by the user for
// filePath, including those named in matching overrides.
func EffectiveExplicitRules(cfg *Config, filePath string) map[string]bool {
	result := make(map[string]bool, len(cfg.ExplicitRules))
	for k, v := range cfg.ExplicitRules {
		result[k] = v
	}
	for _, o := range cfg.Overrides {
		if matchesAny(o.Files, filePath) {
			for k := range o.Rules {
				result[k] = true
			}
		}
	}
	return result
}

// ApplyCategories disables every rule whose category is disabled, unless the
// rule was configured explicitly. Rules in categories absent from the map
// are left alone.
func ApplyCategories(
	rules map[string]RuleCfg,
	categories map[string]bool,
	ruleCategory func(name string) string,
	explicit map[string]bool,
) map[string]RuleCfg {
	result := make(map[string]RuleCfg, len(rules))
	for name, rc := range rules {
		if enabled, ok := categories[ruleCategory(name)]; ok && !enabled && !explicit[name] {
			rc.Enabled = false
		}
		result[name] = rc
	}
	return result
}

// matchesAny returns true if filePath matches any of the given glob patterns.
func matchesAny(patterns []string, filePath string) bool {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(filePath) {
			return true
		}
	}
	return false
}

// IsIgnored reports whether path matches one of the ignore patterns. The
// raw path, its cleaned form and its base name are each tried.
func (c *Config) IsIgnored(path string) bool {
	if c == nil {
		return false
	}
	cleanPath := filepath.Clean(path)
	for _, pattern := range c.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(path) || g.Match(cleanPath) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}
