package rules

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jeduden/notemark/internal/lint"
	"gopkg.in/yaml.v3"
)

//go:embed NM*/README.md
var rulesFS embed.FS

// RuleInfo holds metadata extracted from a rule README's front matter.
type RuleInfo struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Content     string `yaml:"-"`
}

// ListRules returns all embedded rules sorted by ID.
func ListRules() ([]RuleInfo, error) {
	return listRulesFromFS(rulesFS)
}

// LookupRule finds a rule by ID (e.g. "NM001") or name (e.g.
// "heading-syntax") and returns its full README content.
func LookupRule(query string) (string, error) {
	return lookupRuleFromFS(rulesFS, query)
}

func listRulesFromFS(fsys fs.FS) ([]RuleInfo, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading rules directory: %w", err)
	}

	var rules []RuleInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name()+"/README.md")
		if err != nil {
			continue
		}
		info, err := parseFrontMatter(data)
		if err != nil {
			continue
		}
		info.Content = string(data)
		rules = append(rules, info)
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})

	return rules, nil
}

func lookupRuleFromFS(fsys fs.FS, query string) (string, error) {
	rules, err := listRulesFromFS(fsys)
	if err != nil {
		return "", err
	}

	q := strings.ToUpper(query)
	for _, r := range rules {
		if strings.ToUpper(r.ID) == q || r.Name == query {
			return r.Content, nil
		}
	}

	return "", fmt.Errorf("unknown rule %q", query)
}

// parseFrontMatter decodes id, name, and description from the README's
// leading YAML block.
func parseFrontMatter(data []byte) (RuleInfo, error) {
	prefix, _ := lint.StripFrontMatter(data)
	if prefix == nil {
		return RuleInfo{}, fmt.Errorf("missing front matter")
	}

	var info RuleInfo
	if err := yaml.Unmarshal(prefix, &info); err != nil {
		return RuleInfo{}, fmt.Errorf("parsing front matter: %w", err)
	}
	if info.ID == "" {
		return RuleInfo{}, fmt.Errorf("front matter missing id")
	}

	return info, nil
}
