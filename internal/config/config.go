package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValidCategories lists the rule categories that can be toggled as a group.
var ValidCategories = []string{
	"blockquote",
	"cjk",
	"heading",
	"whitespace",
}

// DefaultFiles are the patterns used to find notes when no files are named
// on the command line.
var DefaultFiles = []string{"**/*.md", "**/*.markdown"}

// Config is the top-level configuration.
type Config struct {
	Rules       map[string]RuleCfg `yaml:"rules"`
	Files       []string           `yaml:"files,omitempty"`
	Ignore      []string           `yaml:"ignore,omitempty"`
	Overrides   []Override         `yaml:"overrides,omitempty"`
	FrontMatter *bool              `yaml:"front-matter,omitempty"`
	Categories  map[string]bool    `yaml:"categories,omitempty"`
	Show        *ShowCfg           `yaml:"show,omitempty"`

	// ExplicitRules records rule names the user configured directly, so a
	// disabled category does not switch them off.
	ExplicitRules map[string]bool `yaml:"-"`
}

// Override applies rule settings to files matching glob patterns.
type Override struct {
	Files      []string           `yaml:"files"`
	Rules      map[string]RuleCfg `yaml:"rules,omitempty"`
	Categories map[string]bool    `yaml:"categories,omitempty"`
}

// ShowCfg configures the styled preview printed by `notemark show`.
type ShowCfg struct {
	// ReadOnly renders markers compact on every line, as a non-editable
	// view would.
	ReadOnly bool `yaml:"read-only"`
	// Theme maps span kinds (e.g. "bold", "header-1", "marker") to
	// lipgloss color strings.
	Theme map[string]string `yaml:"theme,omitempty"`
}

// RuleCfg is a YAML union: can be bool (enable/disable) or map[string]any (settings).
type RuleCfg struct {
	Enabled  bool
	Settings map[string]any
}

// UnmarshalYAML implements custom YAML unmarshalling for RuleCfg.
// It handles three forms:
//   - false -> Enabled=false, Settings=nil
//   - true  -> Enabled=true,  Settings=nil
//   - {key: val, ...} -> Enabled=true, Settings={key: val, ...}
func (r *RuleCfg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err == nil {
			r.Enabled = b
			r.Settings = nil
			return nil
		}
	}

	if value.Kind == yaml.MappingNode {
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("invalid rule config: %w", err)
		}
		r.Enabled = true
		r.Settings = m
		return nil
	}

	return fmt.Errorf("rule config must be a bool or a mapping, got %v", value.Kind)
}

// MarshalYAML implements yaml.Marshaler. It is the inverse of
// UnmarshalYAML: a disabled rule or one without settings is written as a
// bool, otherwise the settings map is written.
func (r RuleCfg) MarshalYAML() (any, error) {
	if !r.Enabled || len(r.Settings) == 0 {
		return r.Enabled, nil
	}
	return r.Settings, nil
}

// StripFrontMatter reports whether front matter should be removed before
// linting. It defaults to true.
func (c *Config) StripFrontMatter() bool {
	if c == nil || c.FrontMatter == nil {
		return true
	}
	return *c.FrontMatter
}
