package fullwidthlinkparens

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
		{
			name: "single link",
			text: "[link]（http://x）",
			want: []lint.Issue{{Start: 6, End: 9}, {Start: 17, End: 20}},
		},
		{
			name: "ascii link",
			text: "[link](http://x)",
			want: nil,
		},
		{
			name: "two links",
			text: "[a]（b） and [c]（d）",
			want: []lint.Issue{
				{Start: 3, End: 6}, {Start: 7, End: 10},
				{Start: 18, End: 21}, {Start: 22, End: 25},
			},
		},
		{
			name: "parens without brackets",
			text: "注释（说明）",
			want: nil,
		},
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

func TestCheck_TwoSingleCharacterIssues(t *testing.T) {
	src := []byte("see [link]（http://x）\n")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	diags := (&Rule{}).Check(f)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	for _, d := range diags {
		if got := string(src[d.Start:d.End]); got != "（" && got != "）" {
			t.Errorf("flagged %q, want a single full-width parenthesis", got)
		}
	}
	if diags[0].Column != 11 {
		t.Errorf("expected column 11, got %d", diags[0].Column)
	}
}

func TestCheck_SkipsCode(t *testing.T) {
	src := []byte("`[a]（b）`\n```\n[c]（d）\n```\n")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	if diags := (&Rule{}).Check(f); len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}

func TestFix(t *testing.T) {
	src := []byte("[a]（b） and `[c]（d）` and [e]（f）\n")
	f, err := lint.NewFile("test.md", src)
	if err != nil {
		t.Fatal(err)
	}
	got := string((&Rule{}).Fix(f))
	want := "[a](b) and `[c]（d）` and [e](f)\n"
	if got != want {
		t.Errorf("Fix = %q, want %q", got, want)
	}
}
