package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jeduden/notemark/internal/config"
	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/rule"
	"github.com/jeduden/notemark/internal/rules/excessblanklines"
)

func TestCheckRules_BasicDiagnostics(t *testing.T) {
	f, err := lint.NewFile("test.md", []byte("# Hello\n"))
	if err != nil {
		t.Fatal(err)
	}

	effective := map[string]config.RuleCfg{"mock-rule": {Enabled: true}}
	rules := []rule.Rule{&mockRule{id: "NM999", name: "mock-rule"}}

	diags, errs := CheckRules(f, rules, effective)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(diags) != 1 || diags[0].RuleID != "NM999" {
		t.Fatalf("expected 1 NM999 diagnostic, got %+v", diags)
	}
}

func TestCheckRules_SkipsDisabledAndUnconfigured(t *testing.T) {
	f, err := lint.NewFile("test.md", []byte("# Hello\n"))
	if err != nil {
		t.Fatal(err)
	}

	rules := []rule.Rule{
		&mockRule{id: "NM998", name: "off"},
		&mockRule{id: "NM999", name: "missing"},
	}
	diags, errs := CheckRules(f, rules, map[string]config.RuleCfg{"off": {Enabled: false}})
	if len(errs) != 0 || len(diags) != 0 {
		t.Fatalf("expected nothing, got diags=%v errs=%v", diags, errs)
	}
}

func TestCheckRules_AppliesSettings(t *testing.T) {
	f, err := lint.NewFile("test.md", []byte("a\n\n\n\nb\n"))
	if err != nil {
		t.Fatal(err)
	}
	rules := []rule.Rule{&excessblanklines.Rule{Max: 3}}

	diags, errs := CheckRules(f, rules, map[string]config.RuleCfg{
		"excess-blank-lines": {Enabled: true},
	})
	if len(errs) != 0 || len(diags) != 0 {
		t.Fatalf("max=3: expected no diagnostics, got %v %v", diags, errs)
	}

	diags, errs = CheckRules(f, rules, map[string]config.RuleCfg{
		"excess-blank-lines": {Enabled: true, Settings: map[string]any{"max": 1}},
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(diags) != 2 {
		t.Fatalf("max=1: expected 2 diagnostics, got %d", len(diags))
	}
}

// mockConfigurableErrorRule implements both Rule and Configurable.
// Its ApplySettings always returns an error.
type mockConfigurableErrorRule struct {
	id   string
	name string
}

func (r *mockConfigurableErrorRule) ID() string       { return r.id }
func (r *mockConfigurableErrorRule) Name() string     { return r.name }
func (r *mockConfigurableErrorRule) Category() string { return "whitespace" }
func (r *mockConfigurableErrorRule) Check(_ *lint.File) []lint.Diagnostic {
	return []lint.Diagnostic{{Line: 1, Column: 1, RuleID: r.id, RuleName: r.name, Message: "should not appear"}}
}
func (r *mockConfigurableErrorRule) ApplySettings(_ map[string]any) error {
	return fmt.Errorf("bad settings")
}
func (r *mockConfigurableErrorRule) DefaultSettings() map[string]any {
	return map[string]any{}
}

var _ rule.Configurable = (*mockConfigurableErrorRule)(nil)

func TestCheckRules_ApplySettingsError(t *testing.T) {
	f, err := lint.NewFile("test.md", []byte("# Hello\n"))
	if err != nil {
		t.Fatal(err)
	}

	effective := map[string]config.RuleCfg{
		"bad-rule": {Enabled: true, Settings: map[string]any{"key": "val"}},
	}
	rules := []rule.Rule{&mockConfigurableErrorRule{id: "NM900", name: "bad-rule"}}

	diags, errs := CheckRules(f, rules, effective)
	if len(diags) != 0 {
		t.Errorf("expected 0 diagnostics, got %d: %v", len(diags), diags)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if !strings.Contains(errs[0].Error(), "bad settings") {
		t.Errorf("expected error to contain 'bad settings', got: %v", errs[0])
	}
}

func TestCheckRules_AdjustsLineOffset(t *testing.T) {
	f, err := lint.NewFileFromSource("test.md", []byte("---\ntitle: x\n---\n# Heading\n"), true)
	if err != nil {
		t.Fatal(err)
	}

	effective := map[string]config.RuleCfg{"mock-rule": {Enabled: true}}
	rules := []rule.Rule{&mockRule{id: "NM999", name: "mock-rule"}}

	diags, errs := CheckRules(f, rules, effective)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	// mockRule reports line 1; front matter has 3 lines, so adjusted = 4.
	if diags[0].Line != 4 {
		t.Errorf("expected adjusted line 4, got %d", diags[0].Line)
	}
}

// --- ConfigureRule tests ---

func TestConfigureRule_ReturnsSameInstance(t *testing.T) {
	tests := []struct {
		name string
		rl   rule.Rule
		cfg  config.RuleCfg
	}{
		{"no settings", &excessblanklines.Rule{Max: 3}, config.RuleCfg{Enabled: true}},
		{"non-configurable", &mockRule{id: "NM999", name: "mock-rule"}, config.RuleCfg{Enabled: true, Settings: map[string]any{"k": "v"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConfigureRule(tt.rl, tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.rl {
				t.Error("expected same rule instance")
			}
		})
	}
}

func TestConfigureRule_AppliesSettings(t *testing.T) {
	rl := &excessblanklines.Rule{Max: 3}
	got, err := ConfigureRule(rl, config.RuleCfg{Enabled: true, Settings: map[string]any{"max": 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == rl {
		t.Error("expected a cloned rule, got same instance")
	}

	cloned, ok := got.(*excessblanklines.Rule)
	if !ok {
		t.Fatalf("expected *excessblanklines.Rule, got %T", got)
	}
	if cloned.Max != 5 {
		t.Errorf("expected Max=5, got %d", cloned.Max)
	}
	if rl.Max != 3 {
		t.Errorf("original Max changed to %d, want 3", rl.Max)
	}
}

func TestConfigureRule_ApplySettingsError(t *testing.T) {
	rl := &mockConfigurableErrorRule{id: "NM900", name: "bad-rule"}
	got, err := ConfigureRule(rl, config.RuleCfg{Enabled: true, Settings: map[string]any{"key": "val"}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got != nil {
		t.Errorf("expected nil rule on error, got %v", got)
	}
	if !strings.Contains(err.Error(), "bad-rule") {
		t.Errorf("expected error to name the rule, got: %v", err)
	}
}

func TestSortDiagnostics_SamePositionKeepsOrder(t *testing.T) {
	diags := []lint.Diagnostic{
		{File: "a.md", Line: 1, Column: 1, End: 4, RuleID: "NM003"},
		{File: "a.md", Line: 1, Column: 1, End: 2, RuleID: "NM001"},
		{File: "a.md", Line: 1, Column: 1, End: 2, RuleID: "NM002"},
	}
	SortDiagnostics(diags)

	want := []string{"NM001", "NM002", "NM003"}
	for i, id := range want {
		if diags[i].RuleID != id {
			t.Errorf("diags[%d] = %s, want %s", i, diags[i].RuleID, id)
		}
	}
}
