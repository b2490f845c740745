package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeduden/notemark/internal/rule"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file Discover looks for.
const FileName = ".notemark.yml"

// Load reads and parses a config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	check := func(cats map[string]bool) error {
		for name := range cats {
			if !isValidCategory(name) {
				return fmt.Errorf("unknown category %q", name)
			}
		}
		return nil
	}
	if err := check(c.Categories); err != nil {
		return err
	}
	for _, o := range c.Overrides {
		if err := check(o.Categories); err != nil {
			return err
		}
	}
	return nil
}

func isValidCategory(name string) bool {
	for _, c := range ValidCategories {
		if c == name {
			return true
		}
	}
	return false
}

// Discover walks up the directory tree from startDir looking for a
// .notemark.yml config file. It stops searching when it encounters a .git
// directory (the repository root) or reaches the filesystem root.
// Returns the path to the config file, or "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config with every registered rule set to its default
// enablement and no custom settings.
func Defaults() *Config {
	all := rule.All()
	rules := make(map[string]RuleCfg, len(all))
	for _, r := range all {
		rules[r.Name()] = RuleCfg{Enabled: rule.EnabledByDefault(r)}
	}
	fm := true
	return &Config{
		Rules:       rules,
		Files:       DefaultFiles,
		FrontMatter: &fm,
	}
}

// DumpDefaults returns a Config with all registered rules at their default
// enablement and their default settings populated. Rules that implement
// Configurable have their DefaultSettings() included in RuleCfg.Settings.
// Categories are included with all set to true (enabled).
// This is consumed by `notemark init` to generate a default config file.
func DumpDefaults() *Config {
	all := rule.All()
	rules := make(map[string]RuleCfg, len(all))
	for _, r := range all {
		rc := RuleCfg{Enabled: rule.EnabledByDefault(r)}
		if c, ok := r.(rule.Configurable); ok && rc.Enabled {
			rc.Settings = c.DefaultSettings()
		}
		rules[r.Name()] = rc
	}

	categories := make(map[string]bool, len(ValidCategories))
	for _, cat := range ValidCategories {
		categories[cat] = true
	}

	fm := true
	return &Config{
		Rules:       rules,
		Files:       DefaultFiles,
		FrontMatter: &fm,
		Categories:  categories,
		Show:        &ShowCfg{},
	}
}
