package present

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// LanguageTable is the fixed set of language tags recognized on the first
// line of a code block.
type LanguageTable struct {
	names map[string]struct{}
}

// defaultLanguages are the tags accepted when no table is configured.
//
//nolint:gochecknoglobals // Read-only defaults.
var defaultLanguages = []string{
	"bash", "c", "cpp", "csharp", "css", "dart", "diff", "dockerfile", "elixir",
	"erlang", "go", "graphql", "haskell", "html", "ini", "java", "javascript",
	"json", "kotlin", "lua", "makefile", "markdown", "objectivec", "perl", "php",
	"plaintext", "powershell", "protobuf", "python", "r", "ruby", "rust", "scala",
	"scss", "shell", "sql", "swift", "toml", "typescript", "xml", "yaml",
}

// DefaultLanguages returns the built-in language tags.
func DefaultLanguages() []string {
	return slices.Clone(defaultLanguages)
}

// NewLanguageTable builds a table from tag names. Names are matched without
// regard to case or surrounding whitespace.
func NewLanguageTable(names ...string) *LanguageTable {
	t := &LanguageTable{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if key := foldKey(n); key != "" {
			t.names[key] = struct{}{}
		}
	}
	return t
}

// Lookup returns the canonical tag for line if it names a known language.
func (t *LanguageTable) Lookup(line string) (string, bool) {
	if t == nil {
		return "", false
	}
	key := foldKey(line)
	if _, ok := t.names[key]; !ok || key == "" {
		return "", false
	}
	return key, true
}

// Names returns the known tags in sorted order.
func (t *LanguageTable) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.names))
	for n := range t.names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// foldKey uses a fresh Caser per call because Casers are stateful.
func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
