// Package langdetect guesses the programming language of a code block that
// carries no language tag, so it can still be highlighted.
// It uses go-enry for shebang and classifier based detection.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Plaintext is returned when no language can be determined.
const Plaintext = "plaintext"

// defaultCandidates are the go-enry language names the classifier chooses from.
//
//nolint:gochecknoglobals // Read-only defaults.
var defaultCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "Kotlin", "Swift", "C", "C++", "C#",
	"SQL", "JSON", "YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detector guesses languages from a fixed candidate set.
type Detector struct {
	candidates []string
}

// New returns a Detector choosing among the given go-enry language names.
// With no candidates it uses a default set of common languages.
func New(candidates ...string) *Detector {
	if len(candidates) == 0 {
		candidates = defaultCandidates
	}
	return &Detector{candidates: candidates}
}

// Detect returns a lower-case highlighter name for code, or Plaintext.
func (d *Detector) Detect(code string) string {
	if strings.TrimSpace(code) == "" {
		return Plaintext
	}

	content := []byte(code)

	// Shebangs are the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return highlighterName(lang)
	}

	if lang := detectByHint(code); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, d.candidates); safe && lang != "" {
		return highlighterName(lang)
	}

	return Plaintext
}

//nolint:gochecknoglobals // Shared default detector; Detector is immutable.
var defaultDetector = New()

// Detect runs the default detector.
func Detect(code string) string {
	return defaultDetector.Detect(code)
}

// IsKnown reports whether go-enry recognizes name as a language alias.
func IsKnown(name string) bool {
	_, ok := enry.GetLanguageByAlias(name)
	return ok
}

// highlighterName converts a go-enry language name to the name used for
// code fence tags.
func highlighterName(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	case "C#":
		return "csharp"
	default:
		return strings.ToLower(lang)
	}
}
