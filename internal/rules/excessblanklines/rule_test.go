package excessblanklines

import (
	"testing"

	"github.com/jeduden/notemark/internal/lint"
)

func TestCheck_ThreeBlanksAllowed(t *testing.T) {
	src := []byte("a\n\n\n\nb\n")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	if diags := (&Rule{Max: 3}).Check(f); len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}

func TestCheck_GrowingRange(t *testing.T) {
	// Blank lines start at offsets 2, 3, 4, 5 and 6.
	src := []byte("a\n\n\n\n\n\nb")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	diags := (&Rule{Max: 3}).Check(f)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %+v", len(diags), diags)
	}
	want := []lint.Issue{{Start: 2, End: 5}, {Start: 2, End: 6}}
	for i, d := range diags {
		if d.Issue() != want[i] {
			t.Errorf("diags[%d] = %+v, want %+v", i, d.Issue(), want[i])
		}
	}
	if diags[0].Line != 2 {
		t.Errorf("expected line 2, got %d", diags[0].Line)
	}
}

func TestCheck_WhitespaceOnlyLinesAreBlank(t *testing.T) {
	src := []byte("a\n \n\t\n  \n \nb")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	diags := (&Rule{Max: 3}).Check(f)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Start != 2 || diags[0].End != 10 {
		t.Errorf("expected [2,10), got [%d,%d)", diags[0].Start, diags[0].End)
	}
}

func TestCheck_CodeBlockResetsRun(t *testing.T) {
	src := []byte("a\n\n\n```\n\n\n\n\n```\n\nb")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	if diags := (&Rule{Max: 3}).Check(f); len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d: %+v", len(diags), diags)
	}
}

func TestCheck_ZeroMaxUsesDefault(t *testing.T) {
	src := []byte("a\n\n\nb")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	if diags := (&Rule{}).Check(f); len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}

func TestFix_DropsExtraBlanks(t *testing.T) {
	src := []byte("a\n\n\n\n\n\nb\n")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	got := string((&Rule{Max: 1}).Fix(f))
	want := "a\n\nb\n"
	if got != want {
		t.Errorf("Fix = %q, want %q", got, want)
	}
}

func TestApplySettings(t *testing.T) {
	r := &Rule{}
	if err := r.ApplySettings(map[string]any{"max": 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Max != 2 {
		t.Errorf("expected Max=2, got %d", r.Max)
	}
	if err := r.ApplySettings(map[string]any{"max": "two"}); err == nil {
		t.Error("expected error for non-integer max")
	}
	if err := r.ApplySettings(map[string]any{"max": 0}); err == nil {
		t.Error("expected error for max below 1")
	}
	if err := r.ApplySettings(map[string]any{"min": 1}); err == nil {
		t.Error("expected error for unknown setting")
	}
}

func TestDefaultSettings(t *testing.T) {
	if got := (&Rule{}).DefaultSettings()["max"]; got != 3 {
		t.Errorf("default max = %v, want 3", got)
	}
}
