package fullwidthimagebang

import (
	"reflect"
	"testing"

	"github.com/jeduden/notemark/internal/lint"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []lint.Issue
	}{
		{"ascii paren", "！[alt](a.png)", []lint.Issue{{Start: 0, End: 3}}},
		{"fullwidth paren", "x ！[alt]（a.png）", []lint.Issue{{Start: 2, End: 5}}},
		{"ascii bang", "![alt](a.png)", nil},
		{"no paren", "！[alt] text", nil},
		{"exclamation in prose", "好！[note]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Find(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	src := []byte("# Title\n\n！[cat](cat.png)\n`！[x](y)`\n")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	diags := (&Rule{}).Check(f)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	d := diags[0]
	if d.Start != 9 || d.End != 12 {
		t.Errorf("expected [9,12), got [%d,%d)", d.Start, d.End)
	}
	if d.Line != 3 || d.Column != 1 {
		t.Errorf("expected 3:1, got %d:%d", d.Line, d.Column)
	}
}

func TestFix(t *testing.T) {
	src := []byte("！[a](b) `！[c](d)` ！[e]（f）\n")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	got := string((&Rule{}).Fix(f))
	want := "![a](b) `！[c](d)` ![e]（f）\n"
	if got != want {
		t.Errorf("Fix = %q, want %q", got, want)
	}
}
