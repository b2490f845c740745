package lint

import (
	"testing"
)

func TestStripFrontMatter(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPrefix  string
		wantContent string
	}{
		{
			name:        "with front matter",
			input:       "---\ntitle: hello\n---\n# Heading\n",
			wantPrefix:  "---\ntitle: hello\n---\n",
			wantContent: "# Heading\n",
		},
		{
			name:        "no front matter",
			input:       "# Heading\nSome text\n",
			wantPrefix:  "",
			wantContent: "# Heading\nSome text\n",
		},
		{
			name:        "unclosed front matter",
			input:       "---\ntitle: hello\n# Heading\n",
			wantPrefix:  "",
			wantContent: "---\ntitle: hello\n# Heading\n",
		},
		{
			name:        "empty front matter",
			input:       "---\n---\n# Heading\n",
			wantPrefix:  "---\n---\n",
			wantContent: "# Heading\n",
		},
		{
			name:        "closing delimiter at end of file",
			input:       "---\ntags: [a, b]\n---",
			wantPrefix:  "---\ntags: [a, b]\n---",
			wantContent: "",
		},
		{
			name:        "dashes not at start",
			input:       "# Heading\n---\nfoo\n---\n",
			wantPrefix:  "",
			wantContent: "# Heading\n---\nfoo\n---\n",
		},
		{
			name:        "longer dash run is not a delimiter",
			input:       "---\ntitle: x\n----\nbody\n",
			wantPrefix:  "",
			wantContent: "---\ntitle: x\n----\nbody\n",
		},
		{
			name:        "empty input",
			input:       "",
			wantPrefix:  "",
			wantContent: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, content := StripFrontMatter([]byte(tt.input))
			if string(prefix) != tt.wantPrefix {
				t.Errorf("prefix = %q, want %q", prefix, tt.wantPrefix)
			}
			if string(content) != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
		})
	}
}

func TestFrontMatterLen(t *testing.T) {
	if n := FrontMatterLen([]byte("---\na: 1\n---\nbody")); n != 13 {
		t.Errorf("FrontMatterLen = %d, want 13", n)
	}
	if n := FrontMatterLen([]byte("body")); n != 0 {
		t.Errorf("FrontMatterLen = %d, want 0", n)
	}
}
